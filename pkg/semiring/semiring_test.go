package semiring_test

import (
	"math"
	"testing"

	"github.com/aretw0/latword/pkg/semiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTropical(t *testing.T) {
	var sr semiring.Tropical

	assert.Equal(t, 3.5, sr.Times(1.5, 2))
	assert.Equal(t, 1.5, sr.Plus(1.5, 2))
	assert.Equal(t, 2.0, sr.Times(sr.One(), 2))
	assert.True(t, semiring.IsZero[float64](sr, sr.Times(sr.Zero(), 2)))
	assert.False(t, semiring.IsZero[float64](sr, 0))
}

func TestTropical_Codec(t *testing.T) {
	var sr semiring.Tropical

	w, err := sr.Parse("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, w)
	assert.Equal(t, "0.25", sr.Format(w))

	w, err = sr.Parse("Infinity")
	require.NoError(t, err)
	assert.True(t, math.IsInf(w, 1))
	assert.Equal(t, "Infinity", sr.Format(w))

	_, err = sr.Parse("abc")
	assert.Error(t, err)
}

func TestLattice(t *testing.T) {
	var sr semiring.Lattice
	a := semiring.LatticeWeight{Graph: 1, Acoustic: 2}
	b := semiring.LatticeWeight{Graph: 0.5, Acoustic: 4}

	assert.Equal(t, semiring.LatticeWeight{Graph: 1.5, Acoustic: 6}, sr.Times(a, b))
	assert.Equal(t, a, sr.Plus(a, b), "lower total cost wins")
	assert.Equal(t, a, sr.Times(a, sr.One()))
	assert.True(t, semiring.IsZero[semiring.LatticeWeight](sr, sr.Times(a, sr.Zero())))
	assert.Equal(t, 3.0, sr.Cost(a))

	tieLow := semiring.LatticeWeight{Graph: 1, Acoustic: 1}
	tieHigh := semiring.LatticeWeight{Graph: 2, Acoustic: 0}
	assert.Equal(t, tieLow, sr.Plus(tieHigh, tieLow), "ties go to the lower graph cost")
}

func TestLattice_Codec(t *testing.T) {
	var sr semiring.Lattice

	w, err := sr.Parse("1.5,-2")
	require.NoError(t, err)
	assert.Equal(t, semiring.LatticeWeight{Graph: 1.5, Acoustic: -2}, w)
	assert.Equal(t, "1.5,-2", sr.Format(w))

	w, err = sr.Parse("3")
	require.NoError(t, err)
	assert.Equal(t, semiring.LatticeWeight{Graph: 3}, w)

	_, err = sr.Parse("1,2,3")
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	var sr semiring.Lattice
	w := semiring.LatticeWeight{Graph: 2, Acoustic: 10}

	assert.Equal(t, semiring.LatticeWeight{Graph: 1, Acoustic: 1}, semiring.Scale(w, 0.5, 0.1))
	assert.True(t, semiring.IsZero[semiring.LatticeWeight](sr, semiring.Scale(sr.Zero(), 2, 2)))
}
