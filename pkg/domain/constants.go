package domain

// Label is a non-negative symbol id carried on either side of an arc.
type Label int32

// StateID identifies a state; ids are dense, starting at 0.
type StateID int32

const (
	// Epsilon is the reserved "no symbol" label.
	Epsilon Label = 0

	// NoState marks an automaton without a start state.
	NoState StateID = -1

	// SymbolSeparator joins the elements of a sequence in symbol names.
	SymbolSeparator = "_"

	// EpsilonName is the symbol name of the empty sequence.
	EpsilonName = "0"
)
