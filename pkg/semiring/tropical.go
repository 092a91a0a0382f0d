package semiring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tropical is the (min, +) semiring over float64 costs.
type Tropical struct{}

var _ Weighted[float64] = Tropical{}

func (Tropical) Zero() float64 { return math.Inf(1) }

func (Tropical) One() float64 { return 0 }

func (Tropical) Times(a, b float64) float64 { return a + b }

func (Tropical) Plus(a, b float64) float64 { return math.Min(a, b) }

func (Tropical) Equal(a, b float64) bool { return a == b }

func (Tropical) Cost(w float64) float64 { return w }

// Parse accepts a decimal number or "Infinity".
func (Tropical) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "infinity") || strings.EqualFold(s, "inf") {
		return math.Inf(1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid tropical weight %q: %w", s, err)
	}
	return v, nil
}

func (Tropical) Format(w float64) string {
	return formatFloat(w)
}

func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
