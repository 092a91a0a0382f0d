package fst

import (
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
)

// TopSort returns the states of a in topological order (Kahn's algorithm,
// lowest id first among ready states). It returns domain.ErrCyclic if a has
// a cycle.
func TopSort[W any](a ports.Automaton[W]) ([]domain.StateID, error) {
	n := a.NumStates()
	indeg := make([]int, n)
	for s := 0; s < n; s++ {
		for _, arc := range a.Arcs(domain.StateID(s)) {
			indeg[arc.NextState]++
		}
	}

	queue := make([]domain.StateID, 0, n)
	for s := 0; s < n; s++ {
		if indeg[s] == 0 {
			queue = append(queue, domain.StateID(s))
		}
	}

	order := make([]domain.StateID, 0, n)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		order = append(order, s)
		for _, arc := range a.Arcs(s) {
			indeg[arc.NextState]--
			if indeg[arc.NextState] == 0 {
				queue = append(queue, arc.NextState)
			}
		}
	}

	if len(order) != n {
		return nil, domain.ErrCyclic
	}
	return order, nil
}
