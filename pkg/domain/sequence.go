package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelSequence is an ordered run of non-epsilon labels. The empty sequence
// stands for epsilon as a whole.
type LabelSequence []Label

// Append returns a new sequence with l added at the end. Epsilon is skipped.
// The receiver is never modified, so sequences held by different search
// entries do not share backing arrays.
func (s LabelSequence) Append(l Label) LabelSequence {
	if l == Epsilon {
		return s
	}
	out := make(LabelSequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, l)
}

// Key returns a canonical, order-sensitive string usable as a map key.
func (s LabelSequence) Key() string {
	var sb strings.Builder
	for i, l := range s {
		if i > 0 {
			sb.WriteString(SymbolSeparator)
		}
		sb.WriteString(strconv.FormatInt(int64(l), 10))
	}
	return sb.String()
}

// Name returns the symbol-table name: "0" for the empty sequence, otherwise
// the decimal labels joined with SymbolSeparator.
func (s LabelSequence) Name() string {
	if len(s) == 0 {
		return EpsilonName
	}
	return s.Key()
}

// Equal reports structural equality.
func (s LabelSequence) Equal(o LabelSequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// ParseSequenceKey is the inverse of Key.
func ParseSequenceKey(key string) (LabelSequence, error) {
	if key == "" {
		return LabelSequence{}, nil
	}
	parts := strings.Split(key, SymbolSeparator)
	seq := make(LabelSequence, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid sequence key %q", key)
		}
		seq = append(seq, Label(v))
	}
	return seq, nil
}

// SymbolEntry is one interned sequence and its id.
type SymbolEntry struct {
	Label    Label
	Sequence LabelSequence
}

// Symbol is one row of a text symbol table.
type Symbol struct {
	Label Label  `json:"id"`
	Name  string `json:"name"`
}
