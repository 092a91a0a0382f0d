/*
Package pipeline drives lattice archives through word expansion.

For every entry it applies, in order:

 1. graph/acoustic scaling, when either scale differs from 1;
 2. beam pruning, when the beam is finite;
 3. the inverse scaling, so output weights keep their original scale;
 4. expansion into word arcs (package expand);
 5. writing the result.

Symbol ids live either for one entry (SymbolsPerLattice, the table is
embedded in the output entry) or for the whole run (SymbolsShared, the
caller saves Interner() when Run returns).

With Workers > 1 entries are expanded concurrently into private tables.
The tables are folded into the shared interner in input order, so ids and
output order match a sequential run.
*/
package pipeline
