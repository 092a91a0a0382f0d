package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/aretw0/latword/pkg/symbols"
)

// MaxRequestStates bounds the size of every lattice in a Request.
const MaxRequestStates = 1 << 20

// ErrInvalidRequest marks failures caused by the caller's input.
var ErrInvalidRequest = errors.New("invalid request")

// Request is an archive expansion submitted over a transport (HTTP, MCP).
// Unset optional fields take the DefaultConfig values.
type Request struct {
	Archive       string   `json:"archive"`
	Delimiters    string   `json:"delimiters"`
	MaxLength     *int     `json:"max_length,omitempty"`
	MatchSide     string   `json:"match_side,omitempty"`
	Beam          *float64 `json:"beam,omitempty"`
	AcousticScale *float64 `json:"acoustic_scale,omitempty"`
	GraphScale    *float64 `json:"graph_scale,omitempty"`
}

// Response carries the expanded archive and the symbol table shared by all
// of its entries.
type Response struct {
	Archive string          `json:"archive"`
	Symbols []domain.Symbol `json:"symbols"`
	Summary Summary         `json:"summary"`
}

// Config converts the request into driver parameters.
func (r Request) Config() (Config, error) {
	cfg := DefaultConfig()
	cfg.Symbols = SymbolsShared

	delims, err := domain.ParseDelimiters(r.Delimiters)
	if err != nil {
		return cfg, err
	}
	cfg.Expand.Delimiters = delims

	if cfg.Expand.MatchSide, err = domain.ParseMatchSide(r.MatchSide); err != nil {
		return cfg, err
	}
	if r.MaxLength != nil {
		cfg.Expand.MaxLength = *r.MaxLength
	}
	if r.Beam != nil {
		cfg.Beam = *r.Beam
	}
	if r.AcousticScale != nil {
		cfg.AcousticScale = *r.AcousticScale
	}
	if r.GraphScale != nil {
		cfg.GraphScale = *r.GraphScale
	}
	return cfg, cfg.Validate()
}

// ExpandArchive runs r with a fresh symbol space. Input errors are wrapped
// in ErrInvalidRequest.
func ExpandArchive(ctx context.Context, r Request, opts ...Option) (Response, error) {
	cfg, err := r.Config()
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var sr semiring.Lattice
	entries, err := lattice.ReadAll[Weight](strings.NewReader(r.Archive), sr, lattice.WithMaxStates(MaxRequestStates))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	table := symbols.NewTable()
	p, err := New(cfg, append(opts, WithInterner(table))...)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var sb strings.Builder
	w := lattice.NewWriter[Weight](&sb, sr)
	var sum Summary
	for _, e := range entries {
		out, stats, err := p.Process(ctx, e)
		if err != nil {
			return Response{}, err
		}
		if err := w.Write(out); err != nil {
			return Response{}, err
		}
		sum.Entries++
		sum.Stats.Add(stats)
	}

	table.Add(nil)
	syms, err := symbols.BuildFrom(ctx, table)
	if err != nil {
		return Response{}, err
	}
	return Response{Archive: sb.String(), Symbols: syms, Summary: sum}, nil
}
