package symbols

import (
	"context"
	"sync"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
)

// Table is an in-memory label sequence interner.
// Safe for concurrent use.
type Table struct {
	mu   sync.RWMutex
	ids  map[string]domain.Label
	seqs []domain.LabelSequence
}

var _ ports.Interner = (*Table)(nil)

// NewTable creates a table holding only the reserved empty sequence.
func NewTable() *Table {
	t := &Table{}
	t.reset()
	return t
}

func (t *Table) reset() {
	t.ids = map[string]domain.Label{"": domain.Epsilon}
	t.seqs = []domain.LabelSequence{{}}
}

// Add returns the id of seq, assigning the next free id on first sight.
func (t *Table) Add(seq domain.LabelSequence) domain.Label {
	key := seq.Key()

	t.mu.RLock()
	id, ok := t.ids[key]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[key]; ok {
		return id
	}
	id = domain.Label(len(t.seqs))
	t.ids[key] = id
	t.seqs = append(t.seqs, append(domain.LabelSequence(nil), seq...))
	return id
}

// Lookup returns the id of seq without interning it.
func (t *Table) Lookup(seq domain.LabelSequence) (domain.Label, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[seq.Key()]
	return id, ok
}

// Sequence returns the sequence interned under id.
func (t *Table) Sequence(id domain.Label) (domain.LabelSequence, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.seqs) {
		return nil, false
	}
	return t.seqs[id], true
}

// Len returns the number of interned sequences, the empty one included.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.seqs)
}

// Clear drops every entry except the empty sequence.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

// Intern implements ports.Interner.
func (t *Table) Intern(_ context.Context, seq domain.LabelSequence) (domain.Label, error) {
	return t.Add(seq), nil
}

// Reset implements ports.Interner.
func (t *Table) Reset(_ context.Context) error {
	t.Clear()
	return nil
}

// Entries implements ports.Interner. Entries come back in id order.
func (t *Table) Entries(_ context.Context) ([]domain.SymbolEntry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.SymbolEntry, len(t.seqs))
	for i, seq := range t.seqs {
		out[i] = domain.SymbolEntry{Label: domain.Label(i), Sequence: seq}
	}
	return out, nil
}
