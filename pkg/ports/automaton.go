package ports

import "github.com/aretw0/latword/pkg/domain"

// Automaton is the capability set of a mutable weighted automaton.
// States are dense ids in [0, NumStates()).
type Automaton[W any] interface {
	// Start returns the start state, or domain.NoState.
	Start() domain.StateID
	SetStart(s domain.StateID)

	NumStates() int
	// AddState appends a non-final state and returns its id.
	AddState() domain.StateID
	// DeleteStates removes every state and arc and clears the start state.
	DeleteStates()

	Final(s domain.StateID) W
	SetFinal(s domain.StateID, w W)

	// Arcs returns the arcs leaving s in insertion order. Callers must not
	// modify the returned slice.
	Arcs(s domain.StateID) []domain.Arc[W]
	AddArc(s domain.StateID, arc domain.Arc[W])
	DeleteArcs(s domain.StateID)
}

// Trimmer removes states that are not on any start-to-final path.
type Trimmer[W any] func(a Automaton[W])
