// Package grid provides a generic, row-major 2D grid of cells.
//
// # Overview
//
// A [Grid] stores width*height cells of any comparable symbol type in a
// single slice, indexed by y*width + x. Grids are the unit every other part
// of tisu works on: a Tiled tile layer decodes into a Grid[tile.Tile], rule
// patterns and substitutes are small grids, and the only-once application
// mask is a Grid[bool].
//
// # Access
//
// [Grid.Get] and [Grid.Set] are bounds-checked and fail with OUT_OF_BOUNDS
// for any coordinate outside the grid. [Grid.Segment] copies a rectangular
// region into a new grid, and [Map] converts cell types element-wise.
//
//	g := grid.New[int](geom.V(4, 3))
//	_ = g.Set(geom.V(1, 1), 7)
//	sub, _ := g.Segment(geom.MustRect(1, 1, 2, 2))
//
// # Painting
//
// The painter helpers ([Grid.Fill], [Grid.FillRect], the line helpers and
// [Grid.BorderRect]) draw into a grid and return the rectangles left over
// after the stroke. They are the primitives the procedural generator in
// package generate splits city blocks with. A returned rect whose Empty
// method reports true means there is no area on that side.
//
// # Concurrency
//
// A Grid is not safe for concurrent mutation. Clone it to hand a copy to
// another goroutine.
package grid
