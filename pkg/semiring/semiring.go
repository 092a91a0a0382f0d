package semiring

// Semiring is the algebra a weight type W is consumed through.
type Semiring[W any] interface {
	// Zero is the "no path" value; a state whose final weight is Zero is not final.
	Zero() W
	// One is the identity of Times.
	One() W
	// Times accumulates weights along a path. It must be associative.
	Times(a, b W) W
	// Plus combines alternative paths.
	Plus(a, b W) W
	// Equal compares two weights.
	Equal(a, b W) bool
}

// Ordered is a semiring whose weights map onto a scalar cost where lower is better.
type Ordered[W any] interface {
	Semiring[W]
	Cost(w W) float64
}

// Codec reads and writes weights in text form.
type Codec[W any] interface {
	Parse(s string) (W, error)
	Format(w W) string
}

// Weighted bundles everything the command-line pipeline needs from a weight type.
type Weighted[W any] interface {
	Ordered[W]
	Codec[W]
}

// IsZero reports whether w equals sr.Zero().
func IsZero[W any](sr Semiring[W], w W) bool {
	return sr.Equal(w, sr.Zero())
}
