package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunInternerContract runs a suite of tests to verify that an Interner
// implementation adheres to the defined interface contract.
// The interner must be freshly created (or Reset) before the call.
func RunInternerContract(t *testing.T, in Interner) {
	ctx := context.Background()

	t.Run("Empty Sequence Is Zero", func(t *testing.T) {
		require.NoError(t, in.Reset(ctx))

		id, err := in.Intern(ctx, domain.LabelSequence{})
		require.NoError(t, err)
		assert.Equal(t, domain.Epsilon, id)

		id, err = in.Intern(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.Epsilon, id, "nil and empty are the same sequence")
	})

	t.Run("First Seen Order", func(t *testing.T) {
		require.NoError(t, in.Reset(ctx))

		seqs := []domain.LabelSequence{{1, 2}, {3}, {2, 1}, {1}}
		for i, seq := range seqs {
			id, err := in.Intern(ctx, seq)
			require.NoError(t, err)
			assert.Equal(t, domain.Label(i+1), id, "sequence %v", seq)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		require.NoError(t, in.Reset(ctx))

		first, err := in.Intern(ctx, domain.LabelSequence{4, 5})
		require.NoError(t, err)
		_, err = in.Intern(ctx, domain.LabelSequence{6})
		require.NoError(t, err)
		again, err := in.Intern(ctx, domain.LabelSequence{4, 5})
		require.NoError(t, err)

		assert.Equal(t, first, again)
	})

	t.Run("Reset Reproduces Assignment", func(t *testing.T) {
		seqs := []domain.LabelSequence{{9}, {8, 7}, {9}, {}, {6}}
		run := func() []domain.Label {
			require.NoError(t, in.Reset(ctx))
			ids := make([]domain.Label, 0, len(seqs))
			for _, seq := range seqs {
				id, err := in.Intern(ctx, seq)
				require.NoError(t, err)
				ids = append(ids, id)
			}
			return ids
		}

		assert.Equal(t, run(), run())
	})

	t.Run("Entries", func(t *testing.T) {
		require.NoError(t, in.Reset(ctx))
		_, err := in.Intern(ctx, domain.LabelSequence{1, 2})
		require.NoError(t, err)
		_, err = in.Intern(ctx, domain.LabelSequence{3})
		require.NoError(t, err)

		entries, err := in.Entries(ctx)
		require.NoError(t, err)

		byLabel := make(map[domain.Label]string, len(entries))
		for _, e := range entries {
			byLabel[e.Label] = e.Sequence.Name()
		}
		assert.Equal(t, map[domain.Label]string{0: "0", 1: "1_2", 2: "3"}, byLabel)
	})

	t.Run("Concurrent Intern", func(t *testing.T) {
		require.NoError(t, in.Reset(ctx))

		const workers = 8
		results := make([][]domain.Label, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for l := domain.Label(1); l <= 20; l++ {
					id, err := in.Intern(ctx, domain.LabelSequence{l})
					if err != nil {
						t.Errorf("intern failed: %v", err)
						return
					}
					results[w] = append(results[w], id)
				}
			}(w)
		}
		wg.Wait()

		// Whatever the interleaving, every worker must agree on every id.
		for w := 1; w < workers; w++ {
			assert.Equal(t, results[0], results[w])
		}
		entries, err := in.Entries(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 21)
	})
}

// RunAutomatonContract verifies the Automaton capability set against a
// freshly created, empty automaton. one and zero are the semiring identities
// of the weight type; w is any third, distinct weight.
func RunAutomatonContract[W any](t *testing.T, a Automaton[W], one, zero, w W) {
	t.Run("Empty", func(t *testing.T) {
		a.DeleteStates()
		assert.Equal(t, 0, a.NumStates())
		assert.Equal(t, domain.NoState, a.Start())
	})

	t.Run("States And Finals", func(t *testing.T) {
		a.DeleteStates()
		s0 := a.AddState()
		s1 := a.AddState()
		assert.Equal(t, domain.StateID(0), s0)
		assert.Equal(t, domain.StateID(1), s1)
		assert.Equal(t, zero, a.Final(s0), "new states are not final")

		a.SetStart(s0)
		a.SetFinal(s1, one)
		assert.Equal(t, s0, a.Start())
		assert.Equal(t, one, a.Final(s1))
	})

	t.Run("Arcs Keep Insertion Order", func(t *testing.T) {
		a.DeleteStates()
		s0, s1, s2 := a.AddState(), a.AddState(), a.AddState()
		a.AddArc(s0, domain.Arc[W]{ILabel: 1, OLabel: 1, Weight: w, NextState: s2})
		a.AddArc(s0, domain.Arc[W]{ILabel: 2, OLabel: 0, Weight: one, NextState: s1})

		arcs := a.Arcs(s0)
		require.Len(t, arcs, 2)
		assert.Equal(t, s2, arcs[0].NextState)
		assert.Equal(t, domain.Label(2), arcs[1].ILabel)
		assert.Equal(t, domain.Epsilon, arcs[1].OLabel)
		assert.Empty(t, a.Arcs(s1))

		a.DeleteArcs(s0)
		assert.Empty(t, a.Arcs(s0))
	})

	t.Run("DeleteStates Clears Everything", func(t *testing.T) {
		a.DeleteStates()
		s := a.AddState()
		a.SetStart(s)
		a.AddArc(s, domain.Arc[W]{ILabel: 1, OLabel: 1, Weight: one, NextState: s})

		a.DeleteStates()
		assert.Equal(t, 0, a.NumStates())
		assert.Equal(t, domain.NoState, a.Start())
	})
}
