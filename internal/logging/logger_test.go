package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/latword/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Error("boom", "error", errors.New("bad"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "bad", rec["err"])
	assert.NotContains(t, rec, "error")
}

func TestNewWriter_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelWarn, logging.FormatText)
	logger.Info("hidden")
	logger.Warn("shown", "states", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "states=3")
}

func TestParseLevel(t *testing.T) {
	l, err := logging.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = logging.ParseLevel("chatty")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatText, f)

	f, err = logging.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatJSON, f)

	_, err = logging.ParseFormat("xml")
	assert.Error(t, err)
}
