// Package io reads and writes group presentations as TOML, YAML or JSON.
//
// # Format
//
// A presentation lists the generator names, the relators as words over
// them, and optionally the generators of a subgroup:
//
//	name = "S3"
//	generators = ["a", "b"]
//	relators = ["a^2", "b^3", "(a*b)^2"]
//	subgroup = ["a"]
//
// The same keys are used in YAML and JSON. A single string is accepted
// wherever a list is expected, so `relators = "a^5"` is valid. Words use
// the syntax of [fpgroup.ParseWord].
//
// # Reading and writing
//
// [Import] picks the format from the file extension (.toml, .yaml, .yml,
// .json). [Read] takes the format explicitly. [Write] and [Export] are the
// inverse operations. [Presentation.Group] turns a decoded presentation
// into a [fpgroup.Group].
package io
