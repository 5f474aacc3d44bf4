// Package smallactions enumerates the transitive permutation actions of a
// finitely presented group on at most n points.
//
// Every transitive action of G on k points is the action on the cosets of
// an index-k subgroup, and conjugate subgroups give isomorphic actions. The
// [Iterator] therefore lists conjugacy classes of subgroups of index at most
// n, one canonical coset table per class.
//
// # Search
//
// Tables are built by depth-first search over partial tables. Each step
// fills the first empty entry with an existing row or with a fresh one, and
// the relators are traced from the filled entry to deduce further entries.
// A deduction that contradicts the table discards the branch. Only tables in
// canonical form are kept: relabelling the table by breadth-first search
// from any other starting row must not give a lexicographically smaller
// table. When normal subgroups are requested, every relabelling must give
// the same table.
//
// # Usage
//
//	it, err := smallactions.New(G, 4, false)
//	if err != nil {
//		return err
//	}
//	for it.Next() {
//		a := it.Action()
//		fmt.Println(a.Size(), a.Table())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
//
// The search can be bounded by the number of moves it makes with
// [WithMaxChoices]. Running out of moves stops the iterator with a
// CHOICE_LIMIT error.
package smallactions
