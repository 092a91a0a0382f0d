/*
Package latword turns character-level lattices into word-level lattices.

A speech recognition lattice decoded with a character (or sub-word) model has
one arc per character. latword joins every run of arcs between two
delimiter symbols, such as word boundaries, into a single arc labelled with
a new word symbol, multiplying the weights along the run. Delimiter arcs
are kept as they are. The symbol table mapping word ids back to character
sequences is returned alongside the expanded lattices.

# Concept

A word starts at the start state and after every delimiter arc. From each
word start the expander follows every path until it reaches a state that
ends a word (one with an outgoing delimiter arc, or a final state) and emits
one arc for the path. Paths longer than the maximum word length are
dropped. Unreachable states are trimmed from the result.

# Usage

	eng, err := latword.New([]domain.Label{3}, latword.WithMaxLength(20))
	if err != nil {
		log.Fatal(err)
	}
	summary, err := eng.Expand(ctx, os.Stdin, os.Stdout)

The pkg/expand package exposes the expansion on any ports.Automaton, and
pkg/pipeline adds pruning, parallel workers and shared symbol spaces,
including one held in Redis (pkg/adapters/redis).
*/
package latword
