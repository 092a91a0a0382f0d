package symbols

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
)

// Build turns interned entries into a symbol table sorted by id.
// It fails with domain.ErrInconsistentTable if two sequences share an id,
// a sequence appears under two ids, or an id in [0, max] has no entry.
func Build(entries []domain.SymbolEntry) ([]domain.Symbol, error) {
	byLabel := make(map[domain.Label]domain.LabelSequence, len(entries))
	byKey := make(map[string]domain.Label, len(entries))

	for _, e := range entries {
		key := e.Sequence.Key()
		if prev, ok := byLabel[e.Label]; ok && !prev.Equal(e.Sequence) {
			return nil, fmt.Errorf("%w: id %d assigned to %q and %q",
				domain.ErrInconsistentTable, e.Label, prev.Name(), e.Sequence.Name())
		}
		if prev, ok := byKey[key]; ok && prev != e.Label {
			return nil, fmt.Errorf("%w: sequence %q has ids %d and %d",
				domain.ErrInconsistentTable, e.Sequence.Name(), prev, e.Label)
		}
		byLabel[e.Label] = e.Sequence
		byKey[key] = e.Label
	}

	if len(byLabel) == 0 {
		return nil, nil
	}
	if seq, ok := byLabel[domain.Epsilon]; !ok || len(seq) != 0 {
		return nil, fmt.Errorf("%w: id 0 must be the empty sequence", domain.ErrInconsistentTable)
	}

	out := make([]domain.Symbol, 0, len(byLabel))
	for l, seq := range byLabel {
		out = append(out, domain.Symbol{Label: l, Name: seq.Name()})
	}
	slices.SortFunc(out, func(a, b domain.Symbol) int { return int(a.Label) - int(b.Label) })

	for i, s := range out {
		if s.Label != domain.Label(i) {
			return nil, fmt.Errorf("%w: id %d has no entry", domain.ErrInconsistentTable, i)
		}
	}
	return out, nil
}

// BuildFrom reads the entries of in and builds its symbol table.
func BuildFrom(ctx context.Context, in ports.Interner) ([]domain.Symbol, error) {
	entries, err := in.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read interner entries: %w", err)
	}
	return Build(entries)
}

// WriteText writes one "<id>\t<name>" line per symbol.
func WriteText(w io.Writer, table []domain.Symbol) error {
	bw := bufio.NewWriter(w)
	for _, s := range table {
		if _, err := fmt.Fprintf(bw, "%d\t%s\n", s.Label, s.Name); err != nil {
			return fmt.Errorf("failed to write symbol table: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write symbol table: %w", err)
	}
	return nil
}

// ReadText parses the format written by WriteText. Fields may be separated
// by any whitespace; blank lines are skipped.
func ReadText(r io.Reader) ([]domain.Symbol, error) {
	var out []domain.Symbol
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("symbol table line %d: want 2 fields, got %d", line, len(fields))
		}
		id, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("symbol table line %d: %w", line, err)
		}
		out = append(out, domain.Symbol{Label: domain.Label(id), Name: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read symbol table: %w", err)
	}
	return out, nil
}

// Names indexes a symbol table by id.
func Names(table []domain.Symbol) map[domain.Label]string {
	m := make(map[domain.Label]string, len(table))
	for _, s := range table {
		m[s.Label] = s.Name
	}
	return m
}
