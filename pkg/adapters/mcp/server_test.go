package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/latword/pkg/observability"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archive = "utt1\n0 1 1 1 0.5,0\n1 2 2 2 0.25,0\n2 3 3 3 2,0\n3\n"

func TestTools_Registered(t *testing.T) {
	s := NewServer()
	var names []string
	for _, tool := range s.tools() {
		names = append(names, tool.Tool.Name)
	}
	assert.ElementsMatch(t, []string{"expand_lattice", "inspect_lattice"}, names)
}

func TestHandleExpand(t *testing.T) {
	metrics := observability.NewMetrics()
	s := NewServer(WithMetrics(metrics))

	resp, err := s.handleExpand(context.Background(), mcp.CallToolRequest{}, pipeline.Request{
		Archive:    archive,
		Delimiters: "3",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.Entries)
	assert.Contains(t, resp.Archive, "0 1 2 2 0.75,0")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Arcs.WithLabelValues("word")))
}

func TestHandleExpand_Invalid(t *testing.T) {
	s := NewServer()
	_, err := s.handleExpand(context.Background(), mcp.CallToolRequest{}, pipeline.Request{
		Archive:    archive,
		Delimiters: "0",
	})
	assert.ErrorIs(t, err, pipeline.ErrInvalidRequest)
}

func TestHandleInspect(t *testing.T) {
	s := NewServer()
	resp, err := s.handleInspect(context.Background(), mcp.CallToolRequest{}, InspectArgs{Archive: archive})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	info := resp.Entries[0]
	assert.Equal(t, "utt1", info.Key)
	assert.Equal(t, 4, info.Summary.States)
	assert.Equal(t, 3, info.Summary.Arcs)
	assert.Equal(t, 1, info.Summary.Finals)
	assert.True(t, info.Summary.Acyclic)
}

func TestToolHandler_BindsArguments(t *testing.T) {
	s := NewServer()
	tools := s.tools()

	var req mcp.CallToolRequest
	req.Params.Name = "expand_lattice"
	req.Params.Arguments = map[string]any{
		"archive":    archive,
		"delimiters": "3",
		"max_length": 1,
	}
	result, err := tools[0].Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	resp, ok := result.StructuredContent.(pipeline.Response)
	require.True(t, ok)
	assert.Equal(t, "utt1\n\n", resp.Archive)
}
