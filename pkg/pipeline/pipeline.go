package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/latword/internal/logging"
	"github.com/aretw0/latword/pkg/adapters/memory"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/expand"
	"github.com/aretw0/latword/pkg/fst"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/aretw0/latword/pkg/symbols"
	"golang.org/x/sync/errgroup"
)

// Weight is the weight type archives are processed with.
type Weight = semiring.LatticeWeight

// SymbolMode sets the lifetime of symbol ids.
type SymbolMode int

const (
	// SymbolsPerLattice gives every entry its own table, embedded in the output.
	SymbolsPerLattice SymbolMode = iota
	// SymbolsShared keeps one interner for the whole run.
	SymbolsShared
)

func (m SymbolMode) String() string {
	if m == SymbolsShared {
		return "shared"
	}
	return "per-lattice"
}

// Config holds the driver parameters.
type Config struct {
	Expand        expand.Config
	AcousticScale float64
	GraphScale    float64
	Beam          float64
	Workers       int
	Symbols       SymbolMode
}

// DefaultConfig matches the command-line defaults: no scaling, no pruning,
// one worker, per-lattice symbols.
func DefaultConfig() Config {
	return Config{
		Expand:        expand.DefaultConfig(),
		AcousticScale: 1,
		GraphScale:    1,
		Beam:          math.Inf(1),
		Workers:       1,
	}
}

// Validate reports invalid parameters before any entry is read.
func (c Config) Validate() error {
	if c.AcousticScale <= 0 || c.GraphScale <= 0 {
		return fmt.Errorf("acoustic and graph scales must be strictly greater than 0, got %g and %g", c.AcousticScale, c.GraphScale)
	}
	if c.Beam < 0 || math.IsNaN(c.Beam) {
		return fmt.Errorf("beam must be non-negative, got %g", c.Beam)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Expand.MaxLength < 0 {
		return fmt.Errorf("max length must be non-negative, got %d", c.Expand.MaxLength)
	}
	return nil
}

// EntryEvent describes one processed entry.
type EntryEvent struct {
	Key      string
	Stats    expand.Stats
	Duration time.Duration
	// Pruned is false when pruning was requested but could not be applied.
	Pruned bool
}

// Hooks are called after each entry is expanded, in input order, from the
// goroutine running Run or Process.
type Hooks struct {
	OnEntry func(ctx context.Context, e EntryEvent)
}

// Summary totals a run.
type Summary struct {
	Entries int          `json:"entries"`
	Stats   expand.Stats `json:"stats"`
}

// Pipeline expands every entry of an archive.
type Pipeline struct {
	cfg      Config
	sr       semiring.Lattice
	expander *expand.Expander[Weight]
	interner ports.Interner
	logger   *slog.Logger
	hooks    Hooks
	batch    int
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.interner == nil {
		p.interner = symbols.NewTable()
	}
	if p.batch == 0 {
		p.batch = 4 * cfg.Workers
	}
	p.expander = expand.New[Weight](p.sr, expand.WithConfig(cfg.Expand), expand.WithLogger(p.logger))
	return p, nil
}

// Interner returns the interner shared across entries.
func (p *Pipeline) Interner() ports.Interner {
	return p.interner
}

// Config returns the driver parameters.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// result carries one expanded entry from a worker to the writer.
type result struct {
	entry  lattice.Entry[Weight]
	local  *symbols.Table
	stats  expand.Stats
	pruned bool
	dur    time.Duration
}

// Run reads r to the end and writes every expanded entry to w, in input
// order.
func (p *Pipeline) Run(ctx context.Context, r *lattice.Reader[Weight], w *lattice.Writer[Weight]) (Summary, error) {
	var sum Summary
	pending := make([]lattice.Entry[Weight], 0, p.batch)

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("failed to read archive: %w", err)
		}
		pending = append(pending, e)
		if len(pending) < p.batch && p.cfg.Workers > 1 {
			continue
		}
		if err := p.flush(ctx, pending, w, &sum); err != nil {
			return sum, err
		}
		pending = pending[:0]
	}
	if err := p.flush(ctx, pending, w, &sum); err != nil {
		return sum, err
	}

	p.logger.Info("archive expanded",
		"entries", sum.Entries,
		"word_arcs", sum.Stats.WordArcs,
		"delimiter_arcs", sum.Stats.DelimiterArcs,
		"pruned", sum.Stats.Pruned,
		"symbols", p.cfg.Symbols.String(),
	)
	return sum, nil
}

func (p *Pipeline) flush(ctx context.Context, batch []lattice.Entry[Weight], w *lattice.Writer[Weight], sum *Summary) error {
	if len(batch) == 0 {
		return nil
	}
	results := make([]result, len(batch))

	if p.cfg.Workers == 1 {
		for i, e := range batch {
			res, err := p.process(ctx, e, p.cfg.Symbols == SymbolsShared)
			if err != nil {
				return err
			}
			results[i] = res
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.cfg.Workers)
		for i, e := range batch {
			g.Go(func() error {
				res, err := p.process(gctx, e, false)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for _, res := range results {
		if err := p.commit(ctx, &res); err != nil {
			return err
		}
		if err := w.Write(res.entry); err != nil {
			return err
		}
		sum.Entries++
		sum.Stats.Add(res.stats)
		p.notify(ctx, res)
	}
	return nil
}

// process expands one entry. With direct set the shared interner is used
// as is; otherwise labels go to a private table that commit resolves.
func (p *Pipeline) process(ctx context.Context, e lattice.Entry[Weight], direct bool) (result, error) {
	began := time.Now()
	res := result{entry: lattice.Entry[Weight]{Key: e.Key}}
	in := e.Automaton

	scaled := p.cfg.AcousticScale != 1 || p.cfg.GraphScale != 1
	pruning := !math.IsInf(p.cfg.Beam, 1)
	if scaled || pruning {
		// The caller's automaton is left untouched.
		in = in.Clone()
	}
	if scaled {
		fst.ScaleLattice(in, p.cfg.GraphScale, p.cfg.AcousticScale)
	}
	if pruning {
		if err := fst.Prune[Weight](in, p.sr, p.cfg.Beam); err != nil {
			p.logger.Warn("pruning skipped", "key", e.Key, "error", err)
		} else {
			res.pruned = true
		}
	}
	if scaled {
		fst.ScaleLattice(in, 1/p.cfg.GraphScale, 1/p.cfg.AcousticScale)
	}

	var table ports.Interner
	if direct {
		table = p.interner
	} else {
		res.local = symbols.NewTable()
		table = res.local
	}

	out := memory.New[Weight](p.sr)
	stats, err := p.expander.Expand(ctx, in, out, table, table)
	if err != nil {
		return res, fmt.Errorf("failed to expand %q: %w", e.Key, err)
	}
	res.entry.Automaton = out
	res.stats = stats
	res.dur = time.Since(began)

	p.logger.Debug("entry expanded", "key", e.Key, "states", stats.DestStates, "word_arcs", stats.WordArcs, "duration", res.dur)
	return res, nil
}

// commit resolves a private table: per-lattice entries embed it, shared
// entries are relabelled into the shared interner.
func (p *Pipeline) commit(ctx context.Context, res *result) error {
	if res.local == nil {
		return nil
	}
	if p.cfg.Symbols == SymbolsPerLattice {
		table, err := symbols.BuildFrom(ctx, res.local)
		if err != nil {
			return fmt.Errorf("failed to build symbols for %q: %w", res.entry.Key, err)
		}
		res.entry.Symbols = table
		return nil
	}
	mapping, err := symbols.Remap(ctx, res.local, p.interner)
	if err != nil {
		return fmt.Errorf("failed to merge symbols for %q: %w", res.entry.Key, err)
	}
	relabel(res.entry.Automaton, mapping)
	return nil
}

func relabel(a ports.Automaton[Weight], mapping []domain.Label) {
	for s := 0; s < a.NumStates(); s++ {
		id := domain.StateID(s)
		arcs := append([]domain.Arc[Weight](nil), a.Arcs(id)...)
		a.DeleteArcs(id)
		for _, arc := range arcs {
			arc.ILabel = mapping[arc.ILabel]
			arc.OLabel = mapping[arc.OLabel]
			a.AddArc(id, arc)
		}
	}
}

// Process expands a single entry outside of an archive run, honouring the
// symbol mode and hooks like Run does.
func (p *Pipeline) Process(ctx context.Context, e lattice.Entry[Weight]) (lattice.Entry[Weight], expand.Stats, error) {
	res, err := p.process(ctx, e, p.cfg.Symbols == SymbolsShared)
	if err != nil {
		return lattice.Entry[Weight]{}, expand.Stats{}, err
	}
	if err := p.commit(ctx, &res); err != nil {
		return lattice.Entry[Weight]{}, expand.Stats{}, err
	}
	p.notify(ctx, res)
	return res.entry, res.stats, nil
}

func (p *Pipeline) notify(ctx context.Context, res result) {
	if p.hooks.OnEntry != nil {
		p.hooks.OnEntry(ctx, EntryEvent{Key: res.entry.Key, Stats: res.stats, Duration: res.dur, Pruned: res.pruned})
	}
}
