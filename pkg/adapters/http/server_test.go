package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	latwordhttp "github.com/aretw0/latword/pkg/adapters/http"
	"github.com/aretw0/latword/pkg/observability"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archive = "utt1\n0 1 1 1 0.5,0\n1 2 2 2 0.25,0\n2 3 3 3 2,0\n3\n"

func serve(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := serve(t, latwordhttp.NewHandler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := serve(t, latwordhttp.NewHandler(), http.MethodGet, "/info", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "latword-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
}

func TestExpand(t *testing.T) {
	metrics := observability.NewMetrics()
	h := latwordhttp.NewHandler(latwordhttp.WithMetrics(metrics))

	body, err := json.Marshal(pipeline.Request{Archive: archive, Delimiters: "3"})
	require.NoError(t, err)
	rr := serve(t, h, http.MethodPost, "/expand", bytes.NewReader(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp pipeline.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.Entries)
	assert.Contains(t, resp.Archive, "0 1 2 2 0.75,0")
	require.Len(t, resp.Symbols, 3)
	assert.Equal(t, "1_2", resp.Symbols[2].Name)

	// The expansion shows up on /metrics.
	rr = serve(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `latword_arcs_total{kind="word"} 1`)
}

func TestExpand_BadRequests(t *testing.T) {
	h := latwordhttp.NewHandler()

	tests := map[string]string{
		"Not JSON":          "archive please",
		"Unknown Field":     `{"archive": "", "delimiter": "3"}`,
		"Epsilon Delimiter": `{"archive": "k\n0\n", "delimiters": "0"}`,
		"Broken Archive":    `{"archive": "k\n0 1\n0 1 2\n"}`,
		"Huge State ID":     `{"archive": "k\n0 20000000 1 1\n20000000\n"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rr := serve(t, h, http.MethodPost, "/expand", strings.NewReader(body))
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestExpand_BodyLimit(t *testing.T) {
	h := latwordhttp.NewHandler(latwordhttp.WithMaxBody(16))
	body, err := json.Marshal(pipeline.Request{Archive: archive})
	require.NoError(t, err)

	rr := serve(t, h, http.MethodPost, "/expand", bytes.NewReader(body))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsRouteNeedsMetrics(t *testing.T) {
	rr := serve(t, latwordhttp.NewHandler(), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	rr := serve(t, latwordhttp.NewHandler(), http.MethodOptions, "/expand", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
