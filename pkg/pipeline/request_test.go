package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandArchive(t *testing.T) {
	var keys []string
	resp, err := pipeline.ExpandArchive(context.Background(), pipeline.Request{
		Archive:    twoUtterances,
		Delimiters: "3",
	}, pipeline.WithHooks(pipeline.Hooks{
		OnEntry: func(_ context.Context, e pipeline.EntryEvent) { keys = append(keys, e.Key) },
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"utt1", "utt2"}, keys)
	assert.Equal(t, 2, resp.Summary.Entries)
	assert.True(t, strings.HasPrefix(resp.Archive, "utt1\n"))
	assert.Equal(t, []domain.Symbol{
		{Label: 0, Name: "0"},
		{Label: 1, Name: "3"},
		{Label: 2, Name: "1_2"},
		{Label: 3, Name: "5"},
		{Label: 4, Name: "4"},
	}, resp.Symbols)
}

func TestExpandArchive_Options(t *testing.T) {
	one := 1
	resp, err := pipeline.ExpandArchive(context.Background(), pipeline.Request{
		Archive:    twoUtterances,
		Delimiters: "3",
		MaxLength:  &one,
	})
	require.NoError(t, err)

	// utt1 loses "1_2" and with it every path to the final state.
	assert.True(t, strings.HasPrefix(resp.Archive, "utt1\n\n"))
}

func TestExpandArchive_Empty(t *testing.T) {
	resp, err := pipeline.ExpandArchive(context.Background(), pipeline.Request{})
	require.NoError(t, err)
	assert.Empty(t, resp.Archive)
	assert.Equal(t, []domain.Symbol{{Label: 0, Name: "0"}}, resp.Symbols)
}

func TestExpandArchive_InvalidInput(t *testing.T) {
	negative := -1.0
	tests := map[string]pipeline.Request{
		"Epsilon Delimiter": {Archive: twoUtterances, Delimiters: "0"},
		"Bad Side":          {Archive: twoUtterances, MatchSide: "middle"},
		"Negative Beam":     {Archive: twoUtterances, Beam: &negative},
		"Broken Archive":    {Archive: "k\n1 2 3\n"},
		"Huge State ID":     {Archive: "k\n0 20000000 1 1\n20000000\n"},
		"Negative Label":    {Archive: "k\n0 1 -5 -5\n1\n"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pipeline.ExpandArchive(context.Background(), req)
			assert.ErrorIs(t, err, pipeline.ErrInvalidRequest)
		})
	}
}
