package pipeline

import (
	"log/slog"

	"github.com/aretw0/latword/pkg/ports"
)

// Option defines a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithInterner sets the interner used in SymbolsShared mode. It defaults to
// an in-memory symbols.Table.
func WithInterner(in ports.Interner) Option {
	return func(p *Pipeline) {
		p.interner = in
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithHooks registers the per-entry callbacks.
func WithHooks(h Hooks) Option {
	return func(p *Pipeline) {
		p.hooks = h
	}
}

// WithBatchSize sets how many entries are read ahead when Workers > 1.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batch = n
		}
	}
}
