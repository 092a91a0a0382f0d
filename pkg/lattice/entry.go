package lattice

import (
	"github.com/aretw0/latword/pkg/adapters/memory"
	"github.com/aretw0/latword/pkg/domain"
)

// Entry is one keyed automaton of an archive.
type Entry[W any] struct {
	Key       string
	Automaton *memory.Automaton[W]
	// Symbols is the entry's private symbol table, if it has one.
	Symbols []domain.Symbol
}
