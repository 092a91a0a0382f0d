package fst

import (
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

// Connect trims a to the states that are both reachable from the start and
// able to reach a final state. Surviving states are renumbered densely,
// keeping their relative order. If no state survives, a is left empty.
func Connect[W any](a ports.Automaton[W], sr semiring.Semiring[W]) {
	n := a.NumStates()
	start := a.Start()
	if start == domain.NoState || n == 0 {
		a.DeleteStates()
		return
	}

	access := make([]bool, n)
	reverse := make([][]domain.StateID, n)
	stack := []domain.StateID{start}
	access[start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, arc := range a.Arcs(s) {
			reverse[arc.NextState] = append(reverse[arc.NextState], s)
			if !access[arc.NextState] {
				access[arc.NextState] = true
				stack = append(stack, arc.NextState)
			}
		}
	}

	coaccess := make([]bool, n)
	for s := 0; s < n; s++ {
		if access[s] && !semiring.IsZero(sr, a.Final(domain.StateID(s))) {
			coaccess[s] = true
			stack = append(stack, domain.StateID(s))
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range reverse[s] {
			if !coaccess[p] {
				coaccess[p] = true
				stack = append(stack, p)
			}
		}
	}

	if !coaccess[start] {
		a.DeleteStates()
		return
	}

	type kept struct {
		final W
		arcs  []domain.Arc[W]
	}
	remap := make([]domain.StateID, n)
	var states []kept
	for s := 0; s < n; s++ {
		if !coaccess[s] {
			remap[s] = domain.NoState
			continue
		}
		remap[s] = domain.StateID(len(states))
		states = append(states, kept{
			final: a.Final(domain.StateID(s)),
			arcs:  append([]domain.Arc[W](nil), a.Arcs(domain.StateID(s))...),
		})
	}

	a.DeleteStates()
	for range states {
		a.AddState()
	}
	for i, st := range states {
		s := domain.StateID(i)
		a.SetFinal(s, st.final)
		for _, arc := range st.arcs {
			if next := remap[arc.NextState]; next != domain.NoState {
				arc.NextState = next
				a.AddArc(s, arc)
			}
		}
	}
	a.SetStart(remap[start])
}

// Trimmer adapts Connect to ports.Trimmer.
func Trimmer[W any](sr semiring.Semiring[W]) ports.Trimmer[W] {
	return func(a ports.Automaton[W]) { Connect(a, sr) }
}
