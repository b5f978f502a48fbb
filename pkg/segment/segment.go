// Package segment recovers authored rectangles from a grid.
//
// A filter map is drawn as solid rectangles of tiles on a transparent
// background, with patterns and substitutes alternating in reading order.
// [Extract] finds those rectangles in row-major discovery order and [Pairs]
// groups them into pattern/substitute pairs.
//
// A rectangle is located by its top-left cell (a non-transparent cell whose
// left and upper neighbours are transparent) and measured by scanning right
// and down from that cell to the first transparent cell. Cells outside the
// grid count as transparent, so rectangles may touch the grid edge.
package segment

import (
	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
)

// IsTransparent reports whether p is outside g or holds the transparent value.
func IsTransparent[T comparable](g *grid.Grid[T], transparent T, p geom.Vec) bool {
	v, err := g.Get(p)
	return err != nil || v == transparent
}

// IsRectStart reports whether p is the top-left cell of a rectangle.
func IsRectStart[T comparable](g *grid.Grid[T], transparent T, p geom.Vec) bool {
	return !IsTransparent(g, transparent, p) &&
		IsTransparent(g, transparent, p.Sub(geom.V(1, 0))) &&
		IsTransparent(g, transparent, p.Sub(geom.V(0, 1)))
}

// FindRectStart scans from `from` to the end of its row, then every
// following row, and returns the first rectangle start. It fails with
// NOT_FOUND when the scan reaches the end of the grid.
func FindRectStart[T comparable](g *grid.Grid[T], transparent T, from geom.Vec) (geom.Vec, error) {
	x := max(from.X, 0)
	for y := max(from.Y, 0); y < g.Height(); y++ {
		for ; x < g.Width(); x++ {
			if p := geom.V(x, y); IsRectStart(g, transparent, p) {
				return p, nil
			}
		}
		x = 0
	}
	return geom.Vec{}, errors.New(errors.ErrCodeNotFound, "no rectangle start after %v", from)
}

// FindRectSize measures the rectangle whose top-left cell is start. The
// width is the run of non-transparent cells along the start row and the
// height the run down the start column. A transparent start has size (0, 0).
func FindRectSize[T comparable](g *grid.Grid[T], transparent T, start geom.Vec) geom.Vec {
	if IsTransparent(g, transparent, start) {
		return geom.Vec{}
	}
	var size geom.Vec
	for !IsTransparent(g, transparent, geom.V(start.X+size.X, start.Y)) {
		size.X++
	}
	for !IsTransparent(g, transparent, geom.V(start.X, start.Y+size.Y)) {
		size.Y++
	}
	return size
}

// Extract returns every rectangle in g in row-major order of their top-left
// cells. After each rectangle the scan resumes just right of it on the same
// row.
func Extract[T comparable](g *grid.Grid[T], transparent T) []geom.Rect {
	var rects []geom.Rect
	it := geom.Vec{}
	for {
		start, err := FindRectStart(g, transparent, it)
		if err != nil {
			return rects
		}
		size := FindRectSize(g, transparent, start)
		rects = append(rects, geom.Rect{Position: start, Size: size})
		it = geom.V(start.X+size.X, start.Y)
	}
}

// Pairs groups rects into consecutive (pattern, substitute) pairs. It fails
// with INVALID_ARGUMENT when the count is odd.
func Pairs(rects []geom.Rect) ([][2]geom.Rect, error) {
	if len(rects)%2 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"found %d rectangles, patterns and substitutes must come in pairs", len(rects))
	}
	pairs := make([][2]geom.Rect, 0, len(rects)/2)
	for i := 0; i < len(rects); i += 2 {
		pairs = append(pairs, [2]geom.Rect{rects[i], rects[i+1]})
	}
	return pairs, nil
}
