package memory

import (
	"fmt"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

type state[W any] struct {
	final W
	arcs  []domain.Arc[W]
}

// Automaton implements ports.Automaton as a vector of states.
// It is not safe for concurrent mutation.
type Automaton[W any] struct {
	zero   W
	start  domain.StateID
	states []state[W]
}

var _ ports.Automaton[float64] = (*Automaton[float64])(nil)

// New creates an empty automaton whose new states get sr.Zero() as final weight.
func New[W any](sr semiring.Semiring[W]) *Automaton[W] {
	return &Automaton[W]{
		zero:  sr.Zero(),
		start: domain.NoState,
	}
}

func (a *Automaton[W]) Start() domain.StateID { return a.start }

func (a *Automaton[W]) SetStart(s domain.StateID) {
	a.check(s)
	a.start = s
}

func (a *Automaton[W]) NumStates() int { return len(a.states) }

func (a *Automaton[W]) AddState() domain.StateID {
	a.states = append(a.states, state[W]{final: a.zero})
	return domain.StateID(len(a.states) - 1)
}

func (a *Automaton[W]) DeleteStates() {
	a.states = nil
	a.start = domain.NoState
}

func (a *Automaton[W]) Final(s domain.StateID) W {
	a.check(s)
	return a.states[s].final
}

func (a *Automaton[W]) SetFinal(s domain.StateID, w W) {
	a.check(s)
	a.states[s].final = w
}

func (a *Automaton[W]) Arcs(s domain.StateID) []domain.Arc[W] {
	a.check(s)
	return a.states[s].arcs
}

func (a *Automaton[W]) AddArc(s domain.StateID, arc domain.Arc[W]) {
	a.check(s)
	a.check(arc.NextState)
	a.states[s].arcs = append(a.states[s].arcs, arc)
}

func (a *Automaton[W]) DeleteArcs(s domain.StateID) {
	a.check(s)
	a.states[s].arcs = nil
}

// NumArcs returns the total number of arcs.
func (a *Automaton[W]) NumArcs() int {
	n := 0
	for i := range a.states {
		n += len(a.states[i].arcs)
	}
	return n
}

// Clone returns a deep copy.
func (a *Automaton[W]) Clone() *Automaton[W] {
	c := &Automaton[W]{zero: a.zero, start: a.start, states: make([]state[W], len(a.states))}
	for i, st := range a.states {
		c.states[i] = state[W]{final: st.final, arcs: append([]domain.Arc[W](nil), st.arcs...)}
	}
	return c
}

// check enforces the arc-endpoint invariant. Out-of-range ids are programmer
// errors, like an out-of-range slice index.
func (a *Automaton[W]) check(s domain.StateID) {
	if s < 0 || int(s) >= len(a.states) {
		panic(fmt.Errorf("%w: %d (automaton has %d states)", domain.ErrInvalidState, s, len(a.states)))
	}
}
