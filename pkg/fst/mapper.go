package fst

import (
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

// Map replaces every arc weight and every non-zero final weight w with fn(w).
func Map[W any](a ports.Automaton[W], sr semiring.Semiring[W], fn func(W) W) {
	for s := 0; s < a.NumStates(); s++ {
		id := domain.StateID(s)
		if f := a.Final(id); !semiring.IsZero(sr, f) {
			a.SetFinal(id, fn(f))
		}
		arcs := append([]domain.Arc[W](nil), a.Arcs(id)...)
		a.DeleteArcs(id)
		for _, arc := range arcs {
			arc.Weight = fn(arc.Weight)
			a.AddArc(id, arc)
		}
	}
}

// ScaleLattice multiplies the graph and acoustic costs of every weight.
func ScaleLattice(a ports.Automaton[semiring.LatticeWeight], graphScale, acousticScale float64) {
	Map(a, semiring.Lattice{}, func(w semiring.LatticeWeight) semiring.LatticeWeight {
		return semiring.Scale(w, graphScale, acousticScale)
	})
}
