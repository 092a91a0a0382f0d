/*
Package ports defines the driven ports (interfaces) of the lattice expander.

These interfaces decouple the expansion algorithm from concrete automaton
containers and symbol stores, so the same code runs against the in-memory
vector automaton, a process-local symbol table or a Redis-backed one.

# Key Interfaces

  - Automaton: the mutable weighted-graph capability set the expander reads and writes.
  - Interner: assigns stable ids to label sequences, first-seen order, empty sequence at 0.
  - DistributedLocker: serialises access to a shared interner across processes.
*/
package ports
