package lattice

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/latword/pkg/adapters/memory"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/semiring"
)

const (
	symPrefix     = "#sym"
	maxLineLength = 1 << 20
)

// Reader decodes archive entries one at a time.
type Reader[W any] struct {
	sc        *bufio.Scanner
	sr        semiring.Weighted[W]
	line      int
	maxStates int
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerSettings)

type readerSettings struct {
	maxStates int
}

// WithMaxStates rejects entries with more than n states. Zero means no
// limit beyond the density check.
func WithMaxStates(n int) ReaderOption {
	return func(s *readerSettings) {
		s.maxStates = n
	}
}

// NewReader returns a Reader over r. Weights are parsed with sr.
func NewReader[W any](r io.Reader, sr semiring.Weighted[W], opts ...ReaderOption) *Reader[W] {
	var settings readerSettings
	for _, opt := range opts {
		opt(&settings)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Reader[W]{sc: sc, sr: sr, maxStates: settings.maxStates}
}

// pending holds an entry's lines until its state count is known.
type pending[W any] struct {
	arcs   []pendingArc[W]
	finals []pendingFinal[W]
	start  domain.StateID
	max    domain.StateID
	lines  int
}

type pendingArc[W any] struct {
	src domain.StateID
	arc domain.Arc[W]
}

type pendingFinal[W any] struct {
	state  domain.StateID
	weight W
}

func (p *pending[W]) mention(s domain.StateID) {
	if p.start == domain.NoState {
		p.start = s
	}
	p.max = max(p.max, s)
}

// Next returns the next entry, or io.EOF when the archive is exhausted.
func (r *Reader[W]) Next() (Entry[W], error) {
	key, err := r.key()
	if err != nil {
		return Entry[W]{}, err
	}

	e := Entry[W]{Key: key}
	p := pending[W]{start: domain.NoState, max: domain.NoState}
	for r.scan() {
		line := strings.TrimSpace(r.sc.Text())
		if line == "" {
			break
		}
		if err := r.parseLine(&e, &p, line); err != nil {
			return Entry[W]{}, fmt.Errorf("entry %q, line %d: %w", key, r.line, err)
		}
	}
	if err := r.sc.Err(); err != nil {
		return Entry[W]{}, fmt.Errorf("failed to read entry %q: %w", key, err)
	}

	a, err := r.build(p)
	if err != nil {
		return Entry[W]{}, fmt.Errorf("entry %q: %w", key, err)
	}
	e.Automaton = a
	return e, nil
}

// build allocates the states of an entry and replays its lines. Every line
// names at most two states, so a state id of 2*lines or more can only come
// from a sparse or hostile numbering.
func (r *Reader[W]) build(p pending[W]) (*memory.Automaton[W], error) {
	a := memory.New[W](r.sr)
	if p.max == domain.NoState {
		return a, nil
	}
	n := int(p.max) + 1
	if n > 2*p.lines {
		return nil, fmt.Errorf("state %d is out of range for an entry of %d lines", p.max, p.lines)
	}
	if r.maxStates > 0 && n > r.maxStates {
		return nil, fmt.Errorf("entry has %d states, more than the limit of %d", n, r.maxStates)
	}

	for range n {
		a.AddState()
	}
	a.SetStart(p.start)
	for _, f := range p.finals {
		a.SetFinal(f.state, f.weight)
	}
	for _, pa := range p.arcs {
		a.AddArc(pa.src, pa.arc)
	}
	return a, nil
}

// key skips blank lines and returns the next key, or io.EOF.
func (r *Reader[W]) key() (string, error) {
	for r.scan() {
		line := strings.TrimSpace(r.sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 1 {
			return "", fmt.Errorf("line %d: expected a key, got %q", r.line, line)
		}
		return fields[0], nil
	}
	if err := r.sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read archive: %w", err)
	}
	return "", io.EOF
}

func (r *Reader[W]) scan() bool {
	if !r.sc.Scan() {
		return false
	}
	r.line++
	return true
}

func (r *Reader[W]) parseLine(e *Entry[W], p *pending[W], line string) error {
	fields := strings.Fields(line)
	if fields[0] == symPrefix {
		if len(fields) != 3 {
			return fmt.Errorf("malformed symbol line %q", line)
		}
		id, err := parseLabel(fields[1])
		if err != nil {
			return err
		}
		e.Symbols = append(e.Symbols, domain.Symbol{Label: id, Name: fields[2]})
		return nil
	}

	switch len(fields) {
	case 1, 2:
		s, err := parseState(fields[0])
		if err != nil {
			return err
		}
		w, err := r.weight(fields[1:])
		if err != nil {
			return err
		}
		p.mention(s)
		p.finals = append(p.finals, pendingFinal[W]{state: s, weight: w})
	case 4, 5:
		src, err := parseState(fields[0])
		if err != nil {
			return err
		}
		dst, err := parseState(fields[1])
		if err != nil {
			return err
		}
		il, err := parseLabel(fields[2])
		if err != nil {
			return err
		}
		ol, err := parseLabel(fields[3])
		if err != nil {
			return err
		}
		w, err := r.weight(fields[4:])
		if err != nil {
			return err
		}
		p.mention(src)
		p.mention(dst)
		p.arcs = append(p.arcs, pendingArc[W]{src: src, arc: domain.Arc[W]{ILabel: il, OLabel: ol, Weight: w, NextState: dst}})
	default:
		return fmt.Errorf("expected an arc or a final state, got %q", line)
	}
	p.lines++
	return nil
}

func parseState(field string) (domain.StateID, error) {
	v, err := parseInt32(field)
	if err != nil {
		return domain.NoState, err
	}
	if v < 0 {
		return domain.NoState, fmt.Errorf("negative state %d", v)
	}
	return domain.StateID(v), nil
}

func parseLabel(field string) (domain.Label, error) {
	v, err := parseInt32(field)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative label %d", v)
	}
	return domain.Label(v), nil
}

func (r *Reader[W]) weight(fields []string) (W, error) {
	if len(fields) == 0 {
		return r.sr.One(), nil
	}
	w, err := r.sr.Parse(fields[0])
	if err != nil {
		var zero W
		return zero, fmt.Errorf("invalid weight %q: %w", fields[0], err)
	}
	return w, nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int32(v), nil
}

// ReadAll decodes every entry of r.
func ReadAll[W any](r io.Reader, sr semiring.Weighted[W], opts ...ReaderOption) ([]Entry[W], error) {
	lr := NewReader(r, sr, opts...)
	var out []Entry[W]
	for {
		e, err := lr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}
