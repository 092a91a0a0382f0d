/*
Package expand rewrites a character-level automaton into a word-level one.

Every maximal run of non-delimiter labels between two word boundaries is
collapsed into a single arc whose labels are the interned label sequences of
the run and whose weight is the Times-product of the run's arc weights, in
path order. A word boundary is a state that has an outgoing delimiter arc or
a non-zero final weight. Delimiter arcs themselves are copied as one-label
words.

# Algorithm

 1. Copy states, final weights and the start state.
 2. Copy every delimiter arc, labelled with the interned one-element
    sequence, and mark its destination as a word start.
 3. Mark the start state as a word start.
 4. From every word start run a bounded depth-first search on an explicit
    stack, accumulating weight and labels, and emit an arc whenever the
    search reaches a word boundary.
 5. Trim the result.

# Complexity

Cost is proportional to the number of distinct (origin, state, path) triples
reachable within MaxLength labels. There is no memoisation across origins,
so the expansion is exponential in the worst case: with no delimiters every
start-to-final path becomes one arc. Delimiter density and external beam
pruning keep it practical. A cycle free of delimiters only terminates when
MaxLength is finite.

# Determinism

The traversal order is a pure function of the source arc order, so interned
ids are reproducible across runs given the same interner state.
*/
package expand
