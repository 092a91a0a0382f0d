// Package symbols interns label sequences and turns the result into a
// text symbol table.
//
// A Table hands out ids in first-seen order with the empty sequence fixed at
// 0. Build sorts a table's entries by id and names each one ("0" for the
// empty sequence, "1_2" for [1 2]); WriteText emits the OpenFst text format.
package symbols
