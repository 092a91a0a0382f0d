package expand

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/fst"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
)

// pollEvery is how many stack pops pass between context checks.
const pollEvery = 1024

// Expander collapses delimiter-free runs of an automaton into word arcs.
// An Expander holds no per-call state and may be shared by goroutines that
// expand independent automata.
type Expander[W any] struct {
	sr      semiring.Semiring[W]
	cfg     Config
	logger  *slog.Logger
	trimmer ports.Trimmer[W]
}

// New creates an Expander over the semiring sr. By default the result is
// trimmed with fst.Connect.
func New[W any](sr semiring.Semiring[W], opts ...Option) *Expander[W] {
	s := newSettings(opts)
	e := &Expander[W]{
		sr:     sr,
		cfg:    s.cfg,
		logger: s.logger,
	}
	if s.trim {
		e.trimmer = fst.Trimmer(sr)
	}
	return e
}

// WithTrimmer replaces the trim step. A nil trimmer disables it.
func (e *Expander[W]) WithTrimmer(t ports.Trimmer[W]) *Expander[W] {
	e.trimmer = t
	return e
}

// Config returns the expansion parameters.
func (e *Expander[W]) Config() Config {
	return e.cfg
}

// frame is one entry of the work stack: a partial word that started at
// origin and currently ends at current.
type frame[W any] struct {
	origin  domain.StateID
	current domain.StateID
	weight  W
	ilabels domain.LabelSequence
	olabels domain.LabelSequence
}

// Expand rewrites src into dst. dst is cleared first. Input labels of dst
// are interned through in, output labels through out; in and out may be the
// same interner, which gives one symbol space for both sides.
//
// Errors:
//
//   - domain.ErrNilAutomaton   if src or dst is nil.
//   - domain.ErrNilInterner    if in or out is nil.
//   - ctx.Err()                if ctx is done while searching.
//   - any error returned by the interners.
func (e *Expander[W]) Expand(ctx context.Context, src, dst ports.Automaton[W], in, out ports.Interner) (Stats, error) {
	if src == nil || dst == nil {
		return Stats{}, domain.ErrNilAutomaton
	}
	if in == nil || out == nil {
		return Stats{}, domain.ErrNilInterner
	}
	if e.cfg.MaxLength < 0 {
		return Stats{}, fmt.Errorf("max length must be non-negative, got %d", e.cfg.MaxLength)
	}

	// Reserve id 0 for epsilon on both sides.
	if _, err := in.Intern(ctx, nil); err != nil {
		return Stats{}, fmt.Errorf("failed to reserve epsilon: %w", err)
	}
	if _, err := out.Intern(ctx, nil); err != nil {
		return Stats{}, fmt.Errorf("failed to reserve epsilon: %w", err)
	}

	n := src.NumStates()
	stats := Stats{SourceStates: n}

	// 1. Same states, same finals, same start.
	dst.DeleteStates()
	for s := 0; s < n; s++ {
		dst.AddState()
	}
	for s := 0; s < n; s++ {
		dst.SetFinal(domain.StateID(s), src.Final(domain.StateID(s)))
	}
	start := src.Start()
	if start == domain.NoState {
		e.finish(dst, &stats)
		return stats, nil
	}
	dst.SetStart(start)

	// 2-3. Delimiter arcs pass through; their targets and the start state
	// are word starts, kept in first-marked order.
	marked := make([]bool, n)
	starts := make([]domain.StateID, 0, 1)
	mark := func(s domain.StateID) {
		if !marked[s] {
			marked[s] = true
			starts = append(starts, s)
		}
	}
	mark(start)

	for s := 0; s < n; s++ {
		id := domain.StateID(s)
		for _, arc := range src.Arcs(id) {
			if !e.cfg.Delimiters.Contains(arc.Label(e.cfg.MatchSide)) {
				continue
			}
			word, err := e.intern(ctx, in, out,
				domain.LabelSequence(nil).Append(arc.ILabel),
				domain.LabelSequence(nil).Append(arc.OLabel))
			if err != nil {
				return stats, err
			}
			word.Weight = arc.Weight
			word.NextState = arc.NextState
			dst.AddArc(id, word)
			stats.DelimiterArcs++
			mark(arc.NextState)
		}
	}
	stats.WordStarts = len(starts)

	// 4. Bounded search from every word start.
	stack := make([]frame[W], 0, len(starts))
	for _, q := range starts {
		stack = append(stack, frame[W]{origin: q, current: q, weight: e.sr.One()})
	}
	stats.MaxStack = len(stack)

	for len(stack) > 0 {
		if stats.Pops%pollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		top := stack[len(stack)-1]
		stack[len(stack)-1] = frame[W]{}
		stack = stack[:len(stack)-1]
		stats.Pops++

		hasDelim := false
		for _, arc := range src.Arcs(top.current) {
			label := arc.Label(e.cfg.MatchSide)
			if e.cfg.Delimiters.Contains(label) {
				hasDelim = true
				continue
			}
			length := len(top.olabels)
			if e.cfg.MatchSide == domain.MatchInput {
				length = len(top.ilabels)
			}
			if label != domain.Epsilon {
				length++
			}
			if length > e.cfg.MaxLength {
				stats.Pruned++
				continue
			}
			stack = append(stack, frame[W]{
				origin:  top.origin,
				current: arc.NextState,
				weight:  e.sr.Times(top.weight, arc.Weight),
				ilabels: top.ilabels.Append(arc.ILabel),
				olabels: top.olabels.Append(arc.OLabel),
			})
		}
		stats.MaxStack = max(stats.MaxStack, len(stack))

		if top.origin == top.current {
			continue
		}
		if !hasDelim && semiring.IsZero(e.sr, src.Final(top.current)) {
			continue
		}
		word, err := e.intern(ctx, in, out, top.ilabels, top.olabels)
		if err != nil {
			return stats, err
		}
		word.Weight = top.weight
		word.NextState = top.current
		dst.AddArc(top.origin, word)
		stats.WordArcs++
	}

	// 5. Trim.
	e.finish(dst, &stats)
	return stats, nil
}

func (e *Expander[W]) intern(ctx context.Context, in, out ports.Interner, ilabels, olabels domain.LabelSequence) (domain.Arc[W], error) {
	ilab, err := in.Intern(ctx, ilabels)
	if err != nil {
		return domain.Arc[W]{}, fmt.Errorf("failed to intern input sequence %q: %w", ilabels.Name(), err)
	}
	olab, err := out.Intern(ctx, olabels)
	if err != nil {
		return domain.Arc[W]{}, fmt.Errorf("failed to intern output sequence %q: %w", olabels.Name(), err)
	}
	return domain.Arc[W]{ILabel: ilab, OLabel: olab}, nil
}

func (e *Expander[W]) finish(dst ports.Automaton[W], stats *Stats) {
	if e.trimmer != nil {
		e.trimmer(dst)
	}
	stats.DestStates = dst.NumStates()
	e.logger.Debug("expansion finished",
		"source_states", stats.SourceStates,
		"dest_states", stats.DestStates,
		"word_starts", stats.WordStarts,
		"delimiter_arcs", stats.DelimiterArcs,
		"word_arcs", stats.WordArcs,
		"pruned", stats.Pruned,
		"max_stack", stats.MaxStack,
	)
}

// Expand is a one-shot helper around New(sr, opts...).Expand.
func Expand[W any](ctx context.Context, sr semiring.Semiring[W], src, dst ports.Automaton[W], in, out ports.Interner, opts ...Option) (Stats, error) {
	return New(sr, opts...).Expand(ctx, src, dst, in, out)
}
