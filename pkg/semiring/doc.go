// Package semiring defines the weight contract consumed by the expander and
// two concrete weight sets: the tropical semiring over float64 and the
// two-component lattice weight used by speech-recognition lattices.
//
// The expander only needs Times, One, Zero and Equal. Plus and Cost are used
// by beam pruning; Parse and Format by the text lattice archive.
package semiring
