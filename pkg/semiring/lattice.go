package semiring

import (
	"fmt"
	"math"
	"strings"
)

// LatticeWeight is a pair of costs: the graph (language model and
// transition) cost and the acoustic cost.
type LatticeWeight struct {
	Graph    float64 `json:"graph" yaml:"graph"`
	Acoustic float64 `json:"acoustic" yaml:"acoustic"`
}

// Lattice is the semiring over LatticeWeight. Times adds both components;
// Plus keeps the operand with the lower total cost, breaking ties on the
// graph cost.
type Lattice struct{}

var _ Weighted[LatticeWeight] = Lattice{}

func (Lattice) Zero() LatticeWeight {
	return LatticeWeight{Graph: math.Inf(1), Acoustic: math.Inf(1)}
}

func (Lattice) One() LatticeWeight { return LatticeWeight{} }

func (Lattice) Times(a, b LatticeWeight) LatticeWeight {
	return LatticeWeight{Graph: a.Graph + b.Graph, Acoustic: a.Acoustic + b.Acoustic}
}

func (l Lattice) Plus(a, b LatticeWeight) LatticeWeight {
	ca, cb := l.Cost(a), l.Cost(b)
	switch {
	case ca < cb:
		return a
	case cb < ca:
		return b
	case a.Graph <= b.Graph:
		return a
	default:
		return b
	}
}

func (Lattice) Equal(a, b LatticeWeight) bool {
	return a.Graph == b.Graph && a.Acoustic == b.Acoustic
}

func (Lattice) Cost(w LatticeWeight) float64 { return w.Graph + w.Acoustic }

// Parse reads "graph,acoustic". A single number is a graph cost with zero
// acoustic cost.
func (Lattice) Parse(s string) (LatticeWeight, error) {
	var t Tropical
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) > 2 {
		return LatticeWeight{}, fmt.Errorf("invalid lattice weight %q", s)
	}
	g, err := t.Parse(parts[0])
	if err != nil {
		return LatticeWeight{}, err
	}
	w := LatticeWeight{Graph: g}
	if len(parts) == 2 {
		if w.Acoustic, err = t.Parse(parts[1]); err != nil {
			return LatticeWeight{}, err
		}
	}
	return w, nil
}

func (Lattice) Format(w LatticeWeight) string {
	return formatFloat(w.Graph) + "," + formatFloat(w.Acoustic)
}

// Scale multiplies the graph and acoustic costs. Zero stays Zero.
func Scale(w LatticeWeight, graphScale, acousticScale float64) LatticeWeight {
	if math.IsInf(w.Graph, 1) || math.IsInf(w.Acoustic, 1) {
		return w
	}
	return LatticeWeight{Graph: w.Graph * graphScale, Acoustic: w.Acoustic * acousticScale}
}
