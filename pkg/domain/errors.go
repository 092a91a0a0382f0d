package domain

import "errors"

// ErrEpsilonDelimiter is returned when a delimiter set would contain the epsilon label.
var ErrEpsilonDelimiter = errors.New("epsilon (0) cannot be a delimiter symbol")

// ErrNilAutomaton is returned when an expansion receives a nil source or destination.
var ErrNilAutomaton = errors.New("automaton is nil")

// ErrNilInterner is returned when an expansion receives a nil label interner.
var ErrNilInterner = errors.New("interner is nil")

// ErrInconsistentTable is returned when an interner maps two sequences to one id,
// one sequence to two ids, or leaves a gap in its id space.
var ErrInconsistentTable = errors.New("inconsistent symbol table")

// ErrCyclic is returned by algorithms that require an acyclic automaton.
var ErrCyclic = errors.New("automaton is cyclic")

// ErrInvalidState is returned when a state id is outside the automaton.
var ErrInvalidState = errors.New("invalid state")
