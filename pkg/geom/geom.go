// Package geom provides the integer vector and rectangle types shared by the
// grid, rule and segmentation packages.
//
// Coordinates are zero-based with X growing to the right and Y growing down,
// matching the row-major layout of [grid.Grid]. A [Rect] is half-open on both
// axes: it covers Position.X <= x < Position.X+Size.X, and likewise for Y.
package geom

import (
	"fmt"

	"github.com/matzehuels/tisu/pkg/errors"
)

// Vec is a 2D integer vector used for positions and sizes.
type Vec struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y int) Vec { return Vec{X: x, Y: y} }

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Area returns X*Y.
func (v Vec) Area() int { return v.X * v.Y }

// Negative reports whether either component is below zero.
func (v Vec) Negative() bool { return v.X < 0 || v.Y < 0 }

func (v Vec) String() string { return fmt.Sprintf("(%d, %d)", v.X, v.Y) }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Position Vec `json:"position"`
	Size     Vec `json:"size"`
}

// NewRect returns a rect at pos with the given size. It fails with
// INVALID_ARGUMENT if any component is negative.
func NewRect(pos, size Vec) (Rect, error) {
	if pos.Negative() || size.Negative() {
		return Rect{}, errors.New(errors.ErrCodeInvalidArgument, "rect %v+%v has a negative component", pos, size)
	}
	return Rect{Position: pos, Size: size}, nil
}

// RectFromXYWH is NewRect with scalar arguments.
func RectFromXYWH(x, y, w, h int) (Rect, error) {
	return NewRect(V(x, y), V(w, h))
}

// MustRect is like RectFromXYWH but panics on error. For tests and constants.
func MustRect(x, y, w, h int) Rect {
	r, err := RectFromXYWH(x, y, w, h)
	if err != nil {
		panic(err)
	}
	return r
}

// Max returns the exclusive bottom-right corner.
func (r Rect) Max() Vec { return r.Position.Add(r.Size) }

// Area returns the number of cells covered.
func (r Rect) Area() int { return r.Size.Area() }

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool { return r.Size.X <= 0 || r.Size.Y <= 0 }

// ContainsPoint reports whether p lies within r.
func (r Rect) ContainsPoint(p Vec) bool {
	end := r.Max()
	return p.X >= r.Position.X && p.X < end.X &&
		p.Y >= r.Position.Y && p.Y < end.Y
}

// ContainsRect reports whether o lies entirely within r. A rect contains
// itself. An empty o is contained when its position is.
func (r Rect) ContainsRect(o Rect) bool {
	if !r.ContainsPoint(o.Position) {
		return false
	}
	if o.Empty() {
		return true
	}
	return r.ContainsPoint(o.Max().Sub(V(1, 1)))
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.Position.X, r.Position.Y, r.Size.X, r.Size.Y)
}
