// Package cosets enumerates the cosets of a subgroup of a finitely
// presented group with the Todd–Coxeter method.
//
// # Overview
//
// [New] builds the coset table of G modulo the subgroup generated by a list
// of words. The table has one row per coset and two columns per generator,
// one for the generator and one for its inverse. Coset 1 is the subgroup
// itself. The finished table is exposed as an [Action], a group action of G
// on its [Coset] values:
//
//	A := fpgroup.MustFiniteAlphabet("a", "b")
//	G := fpgroup.MustParseGroup(A, "a^3", "b^2", "(a*b)^5")
//	T, err := cosets.New(G, nil)
//	// T.Size() == 60
//
// # Construction
//
// Rows are scanned in order. For each empty entry a new row is allocated,
// and every relator is traced through the table from the new row, forwards
// and backwards. A trace that closes up except for one entry fills that
// entry; a trace whose two ends cross at different rows means those rows
// are the same coset, and they are merged together with everything the
// merge forces. Merged rows are compacted away whenever they make up more
// than half of the table.
//
// # Limits
//
// Enumeration does not terminate for subgroups of infinite index. The
// number of live rows is bounded by [WithSizeLimit] (default
// [DefaultSizeLimit]); exceeding it fails with a SIZE_LIMIT error. Use
// [Enumerate] to stop early on context cancellation.
package cosets
