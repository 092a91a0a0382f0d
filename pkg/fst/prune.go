package fst

import (
	"fmt"
	"math"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

// Prune removes every arc and final weight that only lies on paths whose
// total cost exceeds the best path cost by more than beam, then connects a.
// a must be acyclic. A non-finite or negative beam is rejected except
// +Inf, which leaves a untouched.
func Prune[W any](a ports.Automaton[W], sr semiring.Ordered[W], beam float64) error {
	if math.IsInf(beam, 1) {
		return nil
	}
	if beam < 0 || math.IsNaN(beam) {
		return fmt.Errorf("invalid pruning beam %v", beam)
	}
	start := a.Start()
	if start == domain.NoState {
		return nil
	}

	order, err := TopSort(a)
	if err != nil {
		return fmt.Errorf("cannot prune: %w", err)
	}

	n := a.NumStates()
	inf := math.Inf(1)

	forward := make([]float64, n)
	for i := range forward {
		forward[i] = inf
	}
	forward[start] = 0
	for _, s := range order {
		if math.IsInf(forward[s], 1) {
			continue
		}
		for _, arc := range a.Arcs(s) {
			if c := forward[s] + sr.Cost(arc.Weight); c < forward[arc.NextState] {
				forward[arc.NextState] = c
			}
		}
	}

	backward := make([]float64, n)
	for i := len(order) - 1; i >= 0; i-- {
		s := order[i]
		best := finalCost(a, sr, s)
		for _, arc := range a.Arcs(s) {
			if c := sr.Cost(arc.Weight) + backward[arc.NextState]; c < best {
				best = c
			}
		}
		backward[s] = best
	}

	bestTotal := backward[start]
	if math.IsInf(bestTotal, 1) {
		Connect[W](a, sr)
		return nil
	}
	cutoff := bestTotal + beam

	for s := 0; s < n; s++ {
		id := domain.StateID(s)
		if math.IsInf(forward[s], 1) {
			continue
		}
		if f := finalCost(a, sr, id); forward[s]+f > cutoff {
			a.SetFinal(id, sr.Zero())
		}
		arcs := append([]domain.Arc[W](nil), a.Arcs(id)...)
		a.DeleteArcs(id)
		for _, arc := range arcs {
			if forward[s]+sr.Cost(arc.Weight)+backward[arc.NextState] <= cutoff {
				a.AddArc(id, arc)
			}
		}
	}

	Connect[W](a, sr)
	return nil
}

func finalCost[W any](a ports.Automaton[W], sr semiring.Ordered[W], s domain.StateID) float64 {
	f := a.Final(s)
	if semiring.IsZero[W](sr, f) {
		return math.Inf(1)
	}
	return sr.Cost(f)
}
