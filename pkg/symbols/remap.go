package symbols

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
)

// Remap interns every entry of local into shared, in ascending local id
// order, and returns the local-to-shared id mapping.
//
// A table filled by one expansion and remapped into a shared interner yields
// the same shared ids the expansion would have produced had it interned into
// the shared interner directly, because local ids already follow first-seen
// order.
func Remap(ctx context.Context, local ports.Interner, shared ports.Interner) ([]domain.Label, error) {
	entries, err := local.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local symbols: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })
	mapping := make([]domain.Label, len(entries))
	for _, e := range entries {
		if e.Label < 0 || int(e.Label) >= len(mapping) {
			return nil, fmt.Errorf("local symbol id %d is out of range for %d entries", e.Label, len(entries))
		}
		id, err := shared.Intern(ctx, e.Sequence)
		if err != nil {
			return nil, fmt.Errorf("failed to remap %q: %w", e.Sequence.Name(), err)
		}
		mapping[e.Label] = id
	}
	return mapping, nil
}
