package fst_test

import (
	"testing"

	"github.com/aretw0/latword/pkg/adapters/memory"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/fst"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	var sr semiring.Tropical
	// 0 -> 1 -> 3(final), 0 -> 2 (dead end), 4 -> 3 (unreachable)
	a := memory.NewBuilder[float64](sr).
		Start(0).
		Arc(0, 1, 1, 0).
		Arc(0, 2, 2, 0).
		Arc(1, 3, 3, 0.5).
		Arc(4, 3, 4, 0).
		Final(3, 1).
		Build()

	fst.Connect[float64](a, sr)

	require.Equal(t, 3, a.NumStates())
	assert.Equal(t, domain.StateID(0), a.Start())
	require.Len(t, a.Arcs(0), 1)
	assert.Equal(t, domain.StateID(1), a.Arcs(0)[0].NextState)
	require.Len(t, a.Arcs(1), 1)
	assert.Equal(t, domain.Arc[float64]{ILabel: 3, OLabel: 3, Weight: 0.5, NextState: 2}, a.Arcs(1)[0])
	assert.Equal(t, 1.0, a.Final(2))
}

func TestConnect_NoFinalReachable(t *testing.T) {
	var sr semiring.Tropical
	a := memory.NewBuilder[float64](sr).
		Start(0).
		Arc(0, 1, 1, 0).
		Final(2, 0).
		Build()

	fst.Connect[float64](a, sr)

	assert.Equal(t, 0, a.NumStates())
	assert.Equal(t, domain.NoState, a.Start())
}

func TestConnect_NoStart(t *testing.T) {
	var sr semiring.Tropical
	a := memory.New[float64](sr)
	a.AddState()

	fst.Connect[float64](a, sr)
	assert.Equal(t, 0, a.NumStates())
}

func TestConnect_KeepsCycles(t *testing.T) {
	var sr semiring.Tropical
	a := memory.NewBuilder[float64](sr).
		Start(0).
		Arc(0, 1, 1, 0).
		Arc(1, 0, 2, 0).
		Arc(1, 2, 3, 0).
		Final(2, 0).
		Build()

	fst.Connect[float64](a, sr)
	assert.Equal(t, 3, a.NumStates())
	assert.Len(t, a.Arcs(1), 2)
}

func TestTrimmer(t *testing.T) {
	var sr semiring.Tropical
	a := memory.NewBuilder[float64](sr).Start(0).Arc(0, 1, 1, 0).Arc(0, 2, 1, 0).Final(1, 0).Build()

	fst.Trimmer[float64](sr)(a)
	assert.Equal(t, 2, a.NumStates())
}
