package geom

import "github.com/matzehuels/tisu/pkg/errors"

// HSplit cuts r horizontally so the upper part has height h. It fails with
// INVALID_ARGUMENT unless 0 < h < r.Size.Y.
func HSplit(r Rect, h int) (upper, lower Rect, err error) {
	if h <= 0 || h >= r.Size.Y {
		return Rect{}, Rect{}, errors.New(errors.ErrCodeInvalidArgument, "cannot split %v at height %d", r, h)
	}
	upper = Rect{Position: r.Position, Size: V(r.Size.X, h)}
	lower = Rect{Position: V(r.Position.X, r.Position.Y+h), Size: V(r.Size.X, r.Size.Y-h)}
	return upper, lower, nil
}

// VSplit cuts r vertically so the left part has width w. It fails with
// INVALID_ARGUMENT unless 0 < w < r.Size.X.
func VSplit(r Rect, w int) (left, right Rect, err error) {
	if w <= 0 || w >= r.Size.X {
		return Rect{}, Rect{}, errors.New(errors.ErrCodeInvalidArgument, "cannot split %v at width %d", r, w)
	}
	left = Rect{Position: r.Position, Size: V(w, r.Size.Y)}
	right = Rect{Position: V(r.Position.X+w, r.Position.Y), Size: V(r.Size.X-w, r.Size.Y)}
	return left, right, nil
}

// The helpers below take y or x relative to r and return the part of r
// strictly on one side of that row or column. An empty Rect means nothing
// remains on that side. A coordinate outside r fails with OUT_OF_BOUNDS.

// Above returns the rows of r before row y.
func Above(r Rect, y int) (Rect, error) {
	if y < 0 || y >= r.Size.Y {
		return Rect{}, errors.New(errors.ErrCodeOutOfBounds, "row %d outside %v", y, r)
	}
	if y == 0 {
		return Rect{}, nil
	}
	return Rect{Position: r.Position, Size: V(r.Size.X, y)}, nil
}

// Below returns the rows of r after row y.
func Below(r Rect, y int) (Rect, error) {
	if y < 0 || y >= r.Size.Y {
		return Rect{}, errors.New(errors.ErrCodeOutOfBounds, "row %d outside %v", y, r)
	}
	if y == r.Size.Y-1 {
		return Rect{}, nil
	}
	return Rect{
		Position: V(r.Position.X, r.Position.Y+y+1),
		Size:     V(r.Size.X, r.Size.Y-y-1),
	}, nil
}

// Left returns the columns of r before column x.
func Left(r Rect, x int) (Rect, error) {
	if x < 0 || x >= r.Size.X {
		return Rect{}, errors.New(errors.ErrCodeOutOfBounds, "column %d outside %v", x, r)
	}
	if x == 0 {
		return Rect{}, nil
	}
	return Rect{Position: r.Position, Size: V(x, r.Size.Y)}, nil
}

// Right returns the columns of r after column x.
func Right(r Rect, x int) (Rect, error) {
	if x < 0 || x >= r.Size.X {
		return Rect{}, errors.New(errors.ErrCodeOutOfBounds, "column %d outside %v", x, r)
	}
	if x == r.Size.X-1 {
		return Rect{}, nil
	}
	return Rect{
		Position: V(r.Position.X+x+1, r.Position.Y),
		Size:     V(r.Size.X-x-1, r.Size.Y),
	}, nil
}
