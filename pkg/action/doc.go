// Package action defines the group action contract shared by coset tables
// and enumerated permutation actions, together with combinators that build
// new actions from old ones.
//
// # Contract
//
// A [GroupAction] describes a right action of a finitely presented group on
// a set of points. Points are applied to words of the group, letter by
// letter:
//
//	y, ok := a.Apply(x, w) // y = x·w
//
// Apply returns false when x is not a point of the action or when a letter
// of w is not a generator of the group. Domain returns a fresh sequence on
// every call and may be ranged over any number of times.
//
// # Combinators
//
//   - [Product] acts componentwise on pairs of points.
//   - [Cover] acts on orderings of the whole domain.
//   - [Orbit] restricts an action to the orbit of a point.
//   - [Flat] renumbers an action to 0..n-1 with precomputed generator maps.
//
// [Finite] wraps an explicit domain list and a function giving the image
// of a point under a single generator or its inverse.
//
// # Stabilizers
//
// [NewStabilizer] computes generators and a presentation for the stabilizer
// of a point via the Reidemeister–Schreier method on the Schreier graph of
// the action. Edges of the graph are labelled greedily so that short
// relations close up, which keeps the presentation small.
//
// # Rendering
//
// [ToDOT] writes the Schreier graph as Graphviz DOT and [RenderSVG] renders
// it in-process with [github.com/goccy/go-graphviz].
package action
