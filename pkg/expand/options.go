package expand

import (
	"log/slog"
	"math"

	"github.com/aretw0/latword/internal/logging"
	"github.com/aretw0/latword/pkg/domain"
)

// Unbounded disables word-length pruning.
const Unbounded = math.MaxInt

// Config holds the expansion parameters supplied by the driver.
type Config struct {
	// Delimiters marks word boundaries. May be empty.
	Delimiters domain.DelimiterSet
	// MaxLength is the largest number of non-epsilon match-side labels in one
	// word. Longer runs are dropped, not truncated.
	MaxLength int
	// MatchSide selects the arc side tested against Delimiters and MaxLength.
	MatchSide domain.MatchSide
}

// DefaultConfig returns an unbounded, delimiter-free, output-side config.
func DefaultConfig() Config {
	return Config{MaxLength: Unbounded, MatchSide: domain.MatchOutput}
}

// Option configures an Expander.
type Option func(*settings)

type settings struct {
	cfg    Config
	logger *slog.Logger
	trim   bool
}

// WithDelimiters sets the delimiter labels.
func WithDelimiters(d domain.DelimiterSet) Option {
	return func(s *settings) {
		s.cfg.Delimiters = d
	}
}

// WithMaxLength bounds the word length.
func WithMaxLength(n int) Option {
	return func(s *settings) {
		s.cfg.MaxLength = n
	}
}

// WithMatchSide selects the side matched against the delimiters.
func WithMatchSide(side domain.MatchSide) Option {
	return func(s *settings) {
		s.cfg.MatchSide = side
	}
}

// WithConfig replaces the whole Config.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithLogger sets a structured logger for expansion diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithoutTrim leaves unreachable and dead states in the result.
func WithoutTrim() Option {
	return func(s *settings) {
		s.trim = false
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		cfg:    DefaultConfig(),
		logger: logging.NewNop(),
		trim:   true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}
