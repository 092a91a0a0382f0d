package memory

import (
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/semiring"
)

// Builder provides a fluent API for assembling small automata, mostly in
// tests and examples. States are created on first mention.
type Builder[W any] struct {
	sr semiring.Semiring[W]
	a  *Automaton[W]
}

// NewBuilder creates a builder over an empty automaton.
func NewBuilder[W any](sr semiring.Semiring[W]) *Builder[W] {
	return &Builder[W]{sr: sr, a: New(sr)}
}

func (b *Builder[W]) ensure(s domain.StateID) {
	for domain.StateID(b.a.NumStates()) <= s {
		b.a.AddState()
	}
}

// Start sets the start state.
func (b *Builder[W]) Start(s domain.StateID) *Builder[W] {
	b.ensure(s)
	b.a.SetStart(s)
	return b
}

// Arc adds an arc with the same input and output label.
func (b *Builder[W]) Arc(from, to domain.StateID, label domain.Label, w W) *Builder[W] {
	return b.Transducer(from, to, label, label, w)
}

// Transducer adds an arc with distinct input and output labels.
func (b *Builder[W]) Transducer(from, to domain.StateID, ilabel, olabel domain.Label, w W) *Builder[W] {
	b.ensure(from)
	b.ensure(to)
	b.a.AddArc(from, domain.Arc[W]{ILabel: ilabel, OLabel: olabel, Weight: w, NextState: to})
	return b
}

// Final marks s as final with weight w.
func (b *Builder[W]) Final(s domain.StateID, w W) *Builder[W] {
	b.ensure(s)
	b.a.SetFinal(s, w)
	return b
}

// Build returns the assembled automaton.
func (b *Builder[W]) Build() *Automaton[W] {
	return b.a
}
