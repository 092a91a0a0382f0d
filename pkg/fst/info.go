package fst

import (
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

// Summary holds basic counts of an automaton.
type Summary struct {
	States      int  `json:"states"`
	Arcs        int  `json:"arcs"`
	Finals      int  `json:"finals"`
	EpsilonArcs int  `json:"epsilon_arcs"`
	HasStart    bool `json:"has_start"`
	Acyclic     bool `json:"acyclic"`
}

// Info counts states, arcs, final states and arcs with epsilon on both sides.
func Info[W any](a ports.Automaton[W], sr semiring.Semiring[W]) Summary {
	sum := Summary{States: a.NumStates(), HasStart: a.Start() != domain.NoState}
	for s := 0; s < a.NumStates(); s++ {
		id := domain.StateID(s)
		if !semiring.IsZero(sr, a.Final(id)) {
			sum.Finals++
		}
		for _, arc := range a.Arcs(id) {
			sum.Arcs++
			if arc.ILabel == domain.Epsilon && arc.OLabel == domain.Epsilon {
				sum.EpsilonArcs++
			}
		}
	}
	_, err := TopSort(a)
	sum.Acyclic = err == nil
	return sum
}
