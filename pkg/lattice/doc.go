// Package lattice reads and writes archives of weighted automata in a
// line-oriented text form.
//
// An archive is a sequence of entries. Each entry is:
//
//	<key>
//	#sym <id> <name>                     (optional, repeated)
//	<src> <dst> <ilabel> <olabel> [<weight>]
//	<state> [<weight>]                   (final state)
//	<blank line>
//
// The start state is the source of the first arc or final line. A missing
// weight is the semiring One. The optional #sym lines carry a private symbol
// table for the entry's labels.
package lattice
