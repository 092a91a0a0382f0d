package ports

import (
	"context"

	"github.com/aretw0/latword/pkg/domain"
)

// Interner assigns stable ids to label sequences.
//
// Contract: the empty sequence is always 0; interning a known sequence
// returns its existing id; new sequences get the next id in first-seen order.
// Reset forgets everything except the empty sequence.
type Interner interface {
	Intern(ctx context.Context, seq domain.LabelSequence) (domain.Label, error)
	Reset(ctx context.Context) error
	// Entries returns every interned sequence, in no particular order.
	Entries(ctx context.Context) ([]domain.SymbolEntry, error)
}
