package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DelimiterSet is the set of labels marking word boundaries.
// The zero value is an empty set; it never contains Epsilon.
type DelimiterSet struct {
	labels map[Label]struct{}
}

// NewDelimiterSet builds a set from labels, rejecting Epsilon.
func NewDelimiterSet(labels ...Label) (DelimiterSet, error) {
	d := DelimiterSet{labels: make(map[Label]struct{}, len(labels))}
	for _, l := range labels {
		if l == Epsilon {
			return DelimiterSet{}, ErrEpsilonDelimiter
		}
		if l < 0 {
			return DelimiterSet{}, fmt.Errorf("negative delimiter label %d", l)
		}
		d.labels[l] = struct{}{}
	}
	return d, nil
}

// ParseDelimiters reads whitespace-separated labels, e.g. "3 4".
func ParseDelimiters(s string) (DelimiterSet, error) {
	fields := strings.Fields(s)
	labels := make([]Label, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return DelimiterSet{}, fmt.Errorf("invalid delimiter %q: %w", f, err)
		}
		labels = append(labels, Label(v))
	}
	return NewDelimiterSet(labels...)
}

// Contains reports whether l is a delimiter.
func (d DelimiterSet) Contains(l Label) bool {
	_, ok := d.labels[l]
	return ok
}

// Len returns the number of delimiters.
func (d DelimiterSet) Len() int { return len(d.labels) }

// Labels returns the delimiters in ascending order.
func (d DelimiterSet) Labels() []Label {
	out := make([]Label, 0, len(d.labels))
	for l := range d.labels {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// String renders the set in the same form ParseDelimiters accepts.
func (d DelimiterSet) String() string {
	labels := d.Labels()
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strconv.FormatInt(int64(l), 10)
	}
	return strings.Join(parts, " ")
}
