package domain

import (
	"fmt"
	"strings"
)

// MatchSide selects which side of each arc is compared against the delimiters
// and counted against the maximum word length.
type MatchSide int

const (
	// MatchOutput is the default side, the one the command-line driver uses.
	MatchOutput MatchSide = iota
	MatchInput
)

// String implements fmt.Stringer.
func (m MatchSide) String() string {
	if m == MatchInput {
		return "input"
	}
	return "output"
}

// ParseMatchSide accepts "input" or "output" (case-insensitive). An empty
// string selects the default, MatchOutput.
func ParseMatchSide(s string) (MatchSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "output", "olabel":
		return MatchOutput, nil
	case "input", "ilabel":
		return MatchInput, nil
	default:
		return MatchOutput, fmt.Errorf("unknown match side %q (want input or output)", s)
	}
}
