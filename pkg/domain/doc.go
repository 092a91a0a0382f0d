/*
Package domain contains the core value types of the lattice expander.

It defines labels, states, arcs, label sequences and delimiter sets. The
package is kept pure and free of I/O, following the same Hexagonal layout
as the rest of the module: adapters depend on domain, never the reverse.

# Key Entities

  - Label: a non-negative symbol id; 0 is reserved for epsilon.
  - Arc: a weighted edge with independent input and output labels.
  - LabelSequence: an epsilon-free run of labels, the unit that gets interned.
  - DelimiterSet: the labels that separate words; never contains epsilon.
  - MatchSide: which side of an arc is tested against the delimiters.
*/
package domain
