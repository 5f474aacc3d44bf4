// Package pkg provides the libraries behind fpgroups.
//
// # Overview
//
// fpgroups computes with finitely presented groups: groups given by a finite
// alphabet of generators and a finite list of relators. The pkg directory is
// organized into three main areas:
//
//  1. Algebra: [fpgroup], [partition], [perm], [action], [cosets] and
//     [smallactions]
//  2. Orchestration: [pipeline], [io] and [errors]
//  3. Infrastructure: [cache], [store], [observability] and [buildinfo]
//
// # Architecture
//
// The typical data flow through fpgroups:
//
//	TOML/YAML/JSON presentation or --gen/--rel flags
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [fpgroup] package (alphabet, words, group)
//	         ↓
//	    [cosets] / [smallactions] / [action] (enumerate and analyze)
//	         ↓
//	    [pipeline] package (cached analysis result)
//	         ↓
//	    terminal table, markdown report, DOT/SVG or stored JSON report
//
// # Quick Start
//
// Enumerate the cosets of a subgroup of the symmetric group on three letters:
//
//	A := fpgroup.MustFiniteAlphabet("a", "b")
//	G := fpgroup.MustParseGroup(A, "a^2", "b^3", "(a*b)^2")
//	T, _ := cosets.New(G, []fpgroup.Word{fpgroup.MustParseWord(A, "a")})
//	fmt.Println(T.Size()) // 3
//
// List the transitive actions of small degree:
//
//	it, _ := smallactions.New(G, 6, false)
//	for a := range it.All() {
//	    fmt.Println(a.Size())
//	}
//
// # Main Packages
//
// ## Algebra
//
// [fpgroup] - Alphabets, freely reduced words and their parser, and groups
// with canonical relators and abelian invariants.
//
// [partition] - Union-find over arbitrary comparable values.
//
// [perm] - Permutations in lexicographic order.
//
// [action] - The group action contract with products, covers, orbits,
// stabilizers and Schreier graph rendering.
//
// [cosets] - Todd-Coxeter coset enumeration.
//
// [smallactions] - Low-index enumeration of transitive actions up to
// conjugacy.
//
// ## Orchestration
//
// [pipeline] - Analysis options, results and the cached runner shared by the
// CLI and the HTTP API.
//
// [io] - Presentation files in TOML, YAML and JSON.
//
// [errors] - Error codes with user messages and HTTP statuses.
//
// ## Infrastructure
//
// [cache] - Result caches backed by files, Badger or Redis.
//
// [store] - Report storage in memory or MongoDB.
//
// [observability] - Hooks for enumeration, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/cosets/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [fpgroup]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/fpgroup
// [partition]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/partition
// [perm]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/perm
// [action]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/action
// [cosets]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/cosets
// [smallactions]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/smallactions
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fpgroups/pkg/buildinfo
package pkg
