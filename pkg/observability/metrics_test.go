package observability_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/latword/pkg/expand"
	"github.com/aretw0/latword/pkg/observability"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := observability.NewMetrics()
	m.Observe(expand.Stats{WordArcs: 4, DelimiterArcs: 2, Pruned: 1, DestStates: 5}, 2*time.Millisecond, true)
	m.Observe(expand.Stats{WordArcs: 1}, time.Millisecond, false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lattices.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lattices.WithLabelValues("false")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Arcs.WithLabelValues("word")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Arcs.WithLabelValues("delimiter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pruned))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestHooksChain(t *testing.T) {
	m := observability.NewMetrics()
	var seen []string
	hooks := m.Hooks(pipeline.Hooks{
		OnEntry: func(_ context.Context, e pipeline.EntryEvent) { seen = append(seen, e.Key) },
	})

	hooks.OnEntry(context.Background(), pipeline.EntryEvent{Key: "utt1", Stats: expand.Stats{WordArcs: 3}})
	assert.Equal(t, []string{"utt1"}, seen)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Arcs.WithLabelValues("word")))

	// A zero next hook is fine.
	m.Hooks(pipeline.Hooks{}).OnEntry(context.Background(), pipeline.EntryEvent{Key: "utt2"})
}

func TestHandler(t *testing.T) {
	m := observability.NewMetrics()
	m.Symbols.Set(42)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "latword_symbols 42")
}
