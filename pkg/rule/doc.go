// Package rule implements pattern/substitute rewrite rules over grids.
//
// # Overview
//
// A [Rule] pairs a pattern grid with a substitute grid of the same size. Applying
// a rule sweeps every anchor position of a source grid in row-major order
// (y outer, x inner). At each anchor the rule first draws one sample from its
// [Sampler] and skips the anchor when the sample is not below the rule's
// probability. Otherwise it compares the pattern against the grid under the
// anchor and, on a match, writes the substitute into the destination grid.
//
//	r, _ := rule.New(pattern, substitute, wildcard, rule.DefaultProperties())
//	dst := src.Clone()
//	err := r.Apply(src, dst, rule.NewSampler(42))
//
// # Wildcards
//
// Every rule has one wildcard symbol. A wildcard cell in the pattern matches
// any symbol. A wildcard cell in the substitute leaves the destination cell
// untouched, so a substitute can rewrite part of what it matched.
//
// # Matching Modes
//
// In [Source] mode a rule reads the source grid, which is never written to,
// so every anchor sees the original input. In [Destination] mode the rule
// reads the destination grid while it is being rewritten: substitutions made
// at earlier anchors are visible to later ones and can cascade across a row.
//
// # Only Once
//
// With OnlyOnce set, a rule keeps a mask of every cell it has written during
// one Apply call. A pattern that would overlap a masked cell does not match,
// so no cell is rewritten twice by the same rule.
//
// # Rule Sets
//
// A [RuleSet] is an ordered list of rules applied one after another with the
// same source, destination and sampler. An empty set leaves the destination
// unchanged.
package rule
