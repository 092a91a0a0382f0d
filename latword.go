package latword

import (
	"context"
	"io"
	"log/slog"
	"math"

	"github.com/aretw0/latword/internal/logging"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/expand"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/aretw0/latword/pkg/symbols"
)

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/latword.Version=...".
var Version = "0.1.0"

// Engine is the high-level entry point for the latword library.
// It wraps the archive pipeline and provides a simplified API for consumers.
type Engine struct {
	pipeline *pipeline.Pipeline
	interner ports.Interner
	cfg      pipeline.Config
	logger   *slog.Logger
	hooks    pipeline.Hooks
}

// Option configures the Engine.
type Option func(*Engine)

// WithMaxLength bounds the number of labels in a word.
func WithMaxLength(n int) Option {
	return func(e *Engine) {
		e.cfg.Expand.MaxLength = n
	}
}

// WithMatchSide selects the arc side compared with the delimiters.
func WithMatchSide(side domain.MatchSide) Option {
	return func(e *Engine) {
		e.cfg.Expand.MatchSide = side
	}
}

// WithPruning prunes every lattice with beam after scaling its weights.
func WithPruning(beam, graphScale, acousticScale float64) Option {
	return func(e *Engine) {
		e.cfg.Beam = beam
		e.cfg.GraphScale = graphScale
		e.cfg.AcousticScale = acousticScale
	}
}

// WithWorkers expands up to n entries in parallel.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.cfg.Workers = n
	}
}

// WithSharedSymbols keeps one symbol table for the whole archive, held by
// in (an in-memory table when nil).
func WithSharedSymbols(in ports.Interner) Option {
	return func(e *Engine) {
		e.cfg.Symbols = pipeline.SymbolsShared
		e.interner = in
	}
}

// WithHooks registers per-entry callbacks.
func WithHooks(h pipeline.Hooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine splitting words at the given delimiter labels.
// With no delimiters every path becomes one word.
func New(delimiters []domain.Label, opts ...Option) (*Engine, error) {
	delims, err := domain.NewDelimiterSet(delimiters...)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg: pipeline.Config{
			Expand:        expand.Config{Delimiters: delims, MaxLength: expand.Unbounded, MatchSide: domain.MatchOutput},
			AcousticScale: 1,
			GraphScale:    1,
			Beam:          math.Inf(1),
			Workers:       1,
			Symbols:       pipeline.SymbolsPerLattice,
		},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.interner == nil {
		e.interner = symbols.NewTable()
	}

	p, err := pipeline.New(e.cfg,
		pipeline.WithInterner(e.interner),
		pipeline.WithLogger(e.logger),
		pipeline.WithHooks(e.hooks),
	)
	if err != nil {
		return nil, err
	}
	e.pipeline = p
	return e, nil
}

// Expand reads a lattice archive from r and writes the word-level archive
// to w.
func (e *Engine) Expand(ctx context.Context, r io.Reader, w io.Writer) (pipeline.Summary, error) {
	var sr semiring.Lattice
	return e.pipeline.Run(ctx, lattice.NewReader[pipeline.Weight](r, sr), lattice.NewWriter[pipeline.Weight](w, sr))
}

// Symbols returns the shared symbol table. It is empty in per-lattice mode,
// where every entry carries its own table.
func (e *Engine) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	if e.cfg.Symbols != pipeline.SymbolsShared {
		return nil, nil
	}
	return symbols.BuildFrom(ctx, e.interner)
}
