package grid

import (
	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
)

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// FillRect sets every cell covered by r to v.
func (g *Grid[T]) FillRect(r geom.Rect, v T) error {
	if err := g.checkRect(r); err != nil {
		return err
	}
	for y := r.Position.Y; y < r.Position.Y+r.Size.Y; y++ {
		g.hline(y, r.Position.X, r.Position.X+r.Size.X, v)
	}
	return nil
}

// BorderRect draws the one-cell outline of r and returns the rect inside
// it, which is empty when r is thinner than three cells.
func (g *Grid[T]) BorderRect(r geom.Rect, v T) (geom.Rect, error) {
	if err := g.checkRect(r); err != nil {
		return geom.Rect{}, err
	}
	if r.Empty() {
		return geom.Rect{}, nil
	}
	end := r.Max()
	g.hline(r.Position.Y, r.Position.X, end.X, v)
	g.hline(end.Y-1, r.Position.X, end.X, v)
	g.vline(r.Position.X, r.Position.Y+1, end.Y-1, v)
	g.vline(end.X-1, r.Position.Y+1, end.Y-1, v)

	inner := r.Size.Sub(geom.V(2, 2))
	if inner.X <= 0 || inner.Y <= 0 {
		return geom.Rect{}, nil
	}
	return geom.Rect{Position: r.Position.Add(geom.V(1, 1)), Size: inner}, nil
}

// HLine draws a full-width horizontal line at row y and returns the rects
// above and below it.
func (g *Grid[T]) HLine(y int, v T) (above, below geom.Rect, err error) {
	return g.HLineRect(g.Bounds(), y, v)
}

// HLineRect draws a horizontal line across r at row y, relative to r, and
// returns the parts of r above and below it.
func (g *Grid[T]) HLineRect(r geom.Rect, y int, v T) (above, below geom.Rect, err error) {
	if err := g.checkRect(r); err != nil {
		return geom.Rect{}, geom.Rect{}, err
	}
	if y < 0 || y >= r.Size.Y {
		return geom.Rect{}, geom.Rect{}, errors.New(errors.ErrCodeOutOfBounds, "row %d outside %v", y, r)
	}
	g.hline(r.Position.Y+y, r.Position.X, r.Position.X+r.Size.X, v)
	if above, err = geom.Above(r, y); err != nil {
		return geom.Rect{}, geom.Rect{}, err
	}
	if below, err = geom.Below(r, y); err != nil {
		return geom.Rect{}, geom.Rect{}, err
	}
	return above, below, nil
}

// VLine draws a full-height vertical line at column x and returns the rects
// left and right of it.
func (g *Grid[T]) VLine(x int, v T) (left, right geom.Rect, err error) {
	return g.VLineRect(g.Bounds(), x, v)
}

// VLineRect draws a vertical line down r at column x, relative to r, and
// returns the parts of r left and right of it.
func (g *Grid[T]) VLineRect(r geom.Rect, x int, v T) (left, right geom.Rect, err error) {
	if err := g.checkRect(r); err != nil {
		return geom.Rect{}, geom.Rect{}, err
	}
	if x < 0 || x >= r.Size.X {
		return geom.Rect{}, geom.Rect{}, errors.New(errors.ErrCodeOutOfBounds, "column %d outside %v", x, r)
	}
	g.vline(r.Position.X+x, r.Position.Y, r.Position.Y+r.Size.Y, v)
	if left, err = geom.Left(r, x); err != nil {
		return geom.Rect{}, geom.Rect{}, err
	}
	if right, err = geom.Right(r, x); err != nil {
		return geom.Rect{}, geom.Rect{}, err
	}
	return left, right, nil
}

func (g *Grid[T]) checkRect(r geom.Rect) error {
	if !g.Bounds().ContainsRect(r) {
		return errors.New(errors.ErrCodeOutOfBounds, "rect %v outside grid of size %v", r, g.size)
	}
	return nil
}

// hline and vline assume the caller has bounds-checked the stroke.
func (g *Grid[T]) hline(y, x0, x1 int, v T) {
	row := g.data[y*g.size.X:]
	for x := x0; x < x1; x++ {
		row[x] = v
	}
}

func (g *Grid[T]) vline(x, y0, y1 int, v T) {
	for y := y0; y < y1; y++ {
		g.data[y*g.size.X+x] = v
	}
}
