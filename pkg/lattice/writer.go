package lattice

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/semiring"
)

// Writer encodes archive entries.
type Writer[W any] struct {
	bw *bufio.Writer
	sr semiring.Weighted[W]
}

// NewWriter returns a Writer over w. Weights are formatted with sr.
func NewWriter[W any](w io.Writer, sr semiring.Weighted[W]) *Writer[W] {
	return &Writer[W]{bw: bufio.NewWriter(w), sr: sr}
}

// Write encodes e and flushes it. The start state is written first, then the
// remaining states in ascending order. Weights equal to One are omitted.
func (w *Writer[W]) Write(e Entry[W]) error {
	if e.Key == "" {
		return fmt.Errorf("entry has no key")
	}
	fmt.Fprintln(w.bw, e.Key)
	for _, sym := range e.Symbols {
		fmt.Fprintf(w.bw, "%s %d %s\n", symPrefix, sym.Label, sym.Name)
	}

	if a := e.Automaton; a != nil && a.Start() != domain.NoState {
		w.state(e, a.Start())
		for s := 0; s < a.NumStates(); s++ {
			if domain.StateID(s) != a.Start() {
				w.state(e, domain.StateID(s))
			}
		}
	}
	fmt.Fprintln(w.bw)

	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("failed to write entry %q: %w", e.Key, err)
	}
	return nil
}

func (w *Writer[W]) state(e Entry[W], s domain.StateID) {
	a := e.Automaton
	for _, arc := range a.Arcs(s) {
		fmt.Fprintf(w.bw, "%d %d %d %d%s\n", s, arc.NextState, arc.ILabel, arc.OLabel, w.suffix(arc.Weight))
	}
	if f := a.Final(s); !semiring.IsZero[W](w.sr, f) {
		fmt.Fprintf(w.bw, "%d%s\n", s, w.suffix(f))
	}
}

func (w *Writer[W]) suffix(weight W) string {
	if w.sr.Equal(weight, w.sr.One()) {
		return ""
	}
	return " " + w.sr.Format(weight)
}
