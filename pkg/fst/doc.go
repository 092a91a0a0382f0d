// Package fst implements generic operations over ports.Automaton.
//
// Every function works through the port only, so any container that
// satisfies the capability set can be trimmed, rescaled or pruned.
//
// Operations:
//
//   - Connect(a, sr)          removes states not on a start-to-final path, renumbering the rest.
//   - Map(a, fn)              rewrites every arc and final weight.
//   - TopSort(a)              returns a topological order or domain.ErrCyclic.
//   - Prune(a, sr, beam)      drops arcs and finals whose best path is worse than best+beam.
//   - Info(a, sr)             counts states, arcs, finals and epsilon arcs.
package fst
