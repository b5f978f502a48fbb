package grid

import (
	"slices"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
)

// Grid is a rectangular, row-major array of cells.
type Grid[T comparable] struct {
	size geom.Vec
	data []T
}

// New returns a grid of the given size filled with the zero value of T.
// Like make, it panics if either dimension is negative.
func New[T comparable](size geom.Vec) *Grid[T] {
	if size.Negative() {
		panic("grid: negative size " + size.String())
	}
	return &Grid[T]{size: size, data: make([]T, size.Area())}
}

// FromRows builds a grid from rows of equal, non-zero length.
// It fails with INVALID_ARGUMENT on empty or ragged input.
func FromRows[T comparable](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "grid needs at least one cell")
	}
	w := len(rows[0])
	g := New[T](geom.V(w, len(rows)))
	for y, row := range rows {
		if len(row) != w {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "row %d has %d cells, want %d", y, len(row), w)
		}
		copy(g.data[y*w:], row)
	}
	return g, nil
}

// MustFromRows is like FromRows but panics on error.
func MustFromRows[T comparable](rows [][]T) *Grid[T] {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid[T]) Size() geom.Vec { return g.size }

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.size.X }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.size.Y }

// Bounds returns the rect at the origin covering the whole grid.
func (g *Grid[T]) Bounds() geom.Rect {
	return geom.Rect{Size: g.size}
}

// Data returns the backing slice in row-major order. Writes through the
// returned slice modify the grid.
func (g *Grid[T]) Data() []T { return g.data }

// Rows returns a copy of the cells as a slice of rows.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.size.Y)
	for y := range rows {
		rows[y] = slices.Clone(g.data[y*g.size.X : (y+1)*g.size.X])
	}
	return rows
}

// Clone returns a deep copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{size: g.size, data: slices.Clone(g.data)}
}

// Equal reports whether g and o have the same size and cells.
func (g *Grid[T]) Equal(o *Grid[T]) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.size == o.size && slices.Equal(g.data, o.data)
}

// Get returns the cell at p.
func (g *Grid[T]) Get(p geom.Vec) (T, error) {
	if !g.inBounds(p) {
		var zero T
		return zero, g.outOfBounds(p)
	}
	return g.data[p.Y*g.size.X+p.X], nil
}

// Set stores v at p.
func (g *Grid[T]) Set(p geom.Vec, v T) error {
	if !g.inBounds(p) {
		return g.outOfBounds(p)
	}
	g.data[p.Y*g.size.X+p.X] = v
	return nil
}

// Segment copies the cells covered by r into a new grid of r's size.
// It fails with INVALID_ARGUMENT unless r lies within the grid.
func (g *Grid[T]) Segment(r geom.Rect) (*Grid[T], error) {
	if r.Size.Negative() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "segment %v has negative size", r)
	}
	if !g.Bounds().ContainsRect(r) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "segment %v outside grid of size %v", r, g.size)
	}
	seg := New[T](r.Size)
	for y := 0; y < r.Size.Y; y++ {
		src := (r.Position.Y+y)*g.size.X + r.Position.X
		copy(seg.data[y*r.Size.X:(y+1)*r.Size.X], g.data[src:src+r.Size.X])
	}
	return seg, nil
}

// Count returns the number of cells for which fn reports true.
func (g *Grid[T]) Count(fn func(T) bool) int {
	n := 0
	for _, v := range g.data {
		if fn(v) {
			n++
		}
	}
	return n
}

// Diff returns the number of cells that differ between g and o.
// Grids of different sizes differ in every cell of the larger one.
func (g *Grid[T]) Diff(o *Grid[T]) int {
	if g.size != o.size {
		return max(len(g.data), len(o.data))
	}
	n := 0
	for i, v := range g.data {
		if o.data[i] != v {
			n++
		}
	}
	return n
}

// Map returns a grid of the same size with fn applied to every cell.
func Map[T, U comparable](g *Grid[T], fn func(T) U) *Grid[U] {
	out := New[U](g.size)
	for i, v := range g.data {
		out.data[i] = fn(v)
	}
	return out
}

func (g *Grid[T]) inBounds(p geom.Vec) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.size.X && p.Y < g.size.Y
}

func (g *Grid[T]) outOfBounds(p geom.Vec) error {
	return errors.New(errors.ErrCodeOutOfBounds, "point %v outside grid of size %v", p, g.size)
}
