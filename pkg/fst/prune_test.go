package fst_test

import (
	"math"
	"testing"

	"github.com/aretw0/latword/pkg/adapters/memory"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/fst"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two parallel paths 0 -> 1 -> 3: cost 1 via label 1, cost 5 via label 2.
func diamond() *memory.Automaton[float64] {
	return memory.NewBuilder[float64](semiring.Tropical{}).
		Start(0).
		Arc(0, 1, 1, 0.5).
		Arc(0, 2, 2, 2.5).
		Arc(1, 3, 3, 0.5).
		Arc(2, 3, 3, 2.5).
		Final(3, 0).
		Build()
}

func TestPrune(t *testing.T) {
	var sr semiring.Tropical

	t.Run("Infinite Beam Is NoOp", func(t *testing.T) {
		a := diamond()
		require.NoError(t, fst.Prune[float64](a, sr, math.Inf(1)))
		assert.Equal(t, 4, a.NumStates())
		assert.Equal(t, 4, a.NumArcs())
	})

	t.Run("Wide Beam Keeps Both", func(t *testing.T) {
		a := diamond()
		require.NoError(t, fst.Prune[float64](a, sr, 4))
		assert.Equal(t, 4, a.NumArcs())
	})

	t.Run("Narrow Beam Keeps Best", func(t *testing.T) {
		a := diamond()
		require.NoError(t, fst.Prune[float64](a, sr, 3.9))
		assert.Equal(t, 3, a.NumStates())
		require.Len(t, a.Arcs(0), 1)
		assert.Equal(t, domain.Label(1), a.Arcs(0)[0].ILabel)
	})

	t.Run("Negative Beam", func(t *testing.T) {
		assert.Error(t, fst.Prune[float64](diamond(), sr, -1))
	})

	t.Run("Cyclic", func(t *testing.T) {
		a := memory.NewBuilder[float64](sr).Start(0).Arc(0, 0, 1, 0).Final(0, 0).Build()
		assert.ErrorIs(t, fst.Prune[float64](a, sr, 1), domain.ErrCyclic)
	})
}

func TestPrune_Finals(t *testing.T) {
	var sr semiring.Tropical
	// Final weight on state 1 is far worse than finishing at 2.
	a := memory.NewBuilder[float64](sr).
		Start(0).
		Arc(0, 1, 1, 0).
		Arc(1, 2, 2, 0).
		Final(1, 10).
		Final(2, 0).
		Build()

	require.NoError(t, fst.Prune[float64](a, sr, 1))
	assert.True(t, math.IsInf(a.Final(1), 1))
	assert.Equal(t, 0.0, a.Final(2))
}

func TestTopSort(t *testing.T) {
	order, err := fst.TopSort[float64](diamond())
	require.NoError(t, err)
	assert.Equal(t, []domain.StateID{0, 1, 2, 3}, order)
}

func TestScaleLattice(t *testing.T) {
	var sr semiring.Lattice
	a := memory.NewBuilder[semiring.LatticeWeight](sr).
		Start(0).
		Arc(0, 1, 1, semiring.LatticeWeight{Graph: 1, Acoustic: 4}).
		Final(1, semiring.LatticeWeight{Graph: 2, Acoustic: 2}).
		Build()

	fst.ScaleLattice(a, 2, 0.5)

	assert.Equal(t, semiring.LatticeWeight{Graph: 2, Acoustic: 2}, a.Arcs(0)[0].Weight)
	assert.Equal(t, semiring.LatticeWeight{Graph: 4, Acoustic: 1}, a.Final(1))
	assert.True(t, semiring.IsZero[semiring.LatticeWeight](sr, a.Final(0)), "non-final states stay non-final")
}

func TestInfo(t *testing.T) {
	var sr semiring.Tropical
	a := memory.NewBuilder[float64](sr).
		Start(0).
		Transducer(0, 1, 0, 0, 0).
		Arc(1, 2, 5, 0).
		Final(2, 0).
		Build()

	sum := fst.Info[float64](a, sr)
	assert.Equal(t, fst.Summary{States: 3, Arcs: 2, Finals: 1, EpsilonArcs: 1, HasStart: true, Acyclic: true}, sum)
}
