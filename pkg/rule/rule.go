package rule

import (
	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
)

// Rule rewrites occurrences of a pattern into a substitute. A Rule is
// immutable after New and safe to share between goroutines, provided each
// Apply call gets its own grids and sampler.
type Rule[T comparable] struct {
	pat      *grid.Grid[T]
	sub      *grid.Grid[T]
	wildcard T
	props    Properties
}

// New builds a rule. The pattern and substitute are copied. It fails with
// INVALID_MAP_SIZE if their sizes differ, INVALID_ARGUMENT if either is nil
// or empty, or if props does not validate.
func New[T comparable](pattern, substitute *grid.Grid[T], wildcard T, props Properties) (*Rule[T], error) {
	if pattern == nil || substitute == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "pattern and substitute are required")
	}
	if pattern.Size() != substitute.Size() {
		return nil, errors.New(errors.ErrCodeInvalidMapSize,
			"pattern size %v does not match substitute size %v", pattern.Size(), substitute.Size())
	}
	if pattern.Size().Area() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "pattern has no cells")
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return &Rule[T]{
		pat:      pattern.Clone(),
		sub:      substitute.Clone(),
		wildcard: wildcard,
		props:    props,
	}, nil
}

// Pattern returns a copy of the pattern grid.
func (r *Rule[T]) Pattern() *grid.Grid[T] { return r.pat.Clone() }

// SubstituteGrid returns a copy of the substitute grid.
func (r *Rule[T]) SubstituteGrid() *grid.Grid[T] { return r.sub.Clone() }

// Wildcard returns the wildcard symbol.
func (r *Rule[T]) Wildcard() T { return r.wildcard }

// Properties returns the application properties.
func (r *Rule[T]) Properties() Properties { return r.props }

// Size returns the pattern size.
func (r *Rule[T]) Size() geom.Vec { return r.pat.Size() }

// Apply runs one row-major sweep of the rule over source, writing
// substitutions into destination. Source and destination must have the same
// size, at least as large as the pattern in both dimensions, or Apply fails
// with INVALID_MAP_SIZE and leaves destination unchanged.
//
// Source is only read. In Source mode it may be the same grid as
// destination, which makes it behave like Destination mode.
func (r *Rule[T]) Apply(source, destination *grid.Grid[T], rng Sampler) error {
	if source.Size() != destination.Size() {
		return errors.New(errors.ErrCodeInvalidMapSize,
			"source size %v does not match destination size %v", source.Size(), destination.Size())
	}
	size, psize := source.Size(), r.pat.Size()
	if size.X < psize.X || size.Y < psize.Y {
		return errors.New(errors.ErrCodeInvalidMapSize, "grid size %v is smaller than pattern size %v", size, psize)
	}

	var mask *grid.Grid[bool]
	if r.props.OnlyOnce {
		mask = grid.New[bool](size)
	}
	read := source
	if r.props.Mode == Destination {
		read = destination
	}

	for y := 0; y <= size.Y-psize.Y; y++ {
		for x := 0; x <= size.X-psize.X; x++ {
			if rng.Float64() >= r.props.Probability {
				continue
			}
			anchor := geom.V(x, y)
			if r.matchAt(read, anchor, mask) {
				r.writeAt(destination, anchor, mask)
			}
		}
	}
	return nil
}

// Matches reports whether the pattern matches g with its top-left corner at
// anchor. A non-nil mask makes any masked cell under the pattern a mismatch.
// A pattern that does not fit at anchor never matches.
func (r *Rule[T]) Matches(g *grid.Grid[T], anchor geom.Vec, mask *grid.Grid[bool]) bool {
	if !r.fits(g.Size(), anchor) || (mask != nil && mask.Size() != g.Size()) {
		return false
	}
	return r.matchAt(g, anchor, mask)
}

// Substitute writes the non-wildcard substitute cells into dst at anchor,
// marking every covered cell in mask when mask is non-nil. It fails with
// OUT_OF_BOUNDS if the substitute does not fit.
func (r *Rule[T]) Substitute(dst *grid.Grid[T], anchor geom.Vec, mask *grid.Grid[bool]) error {
	if !r.fits(dst.Size(), anchor) {
		return errors.New(errors.ErrCodeOutOfBounds, "substitute at %v exceeds grid of size %v", anchor, dst.Size())
	}
	if mask != nil && mask.Size() != dst.Size() {
		return errors.New(errors.ErrCodeInvalidMapSize, "mask size %v does not match grid size %v", mask.Size(), dst.Size())
	}
	r.writeAt(dst, anchor, mask)
	return nil
}

func (r *Rule[T]) fits(size, anchor geom.Vec) bool {
	end := anchor.Add(r.pat.Size())
	return !anchor.Negative() && end.X <= size.X && end.Y <= size.Y
}

// matchAt and writeAt work on the backing slices and assume the caller
// has checked that the pattern fits at anchor.
func (r *Rule[T]) matchAt(g *grid.Grid[T], anchor geom.Vec, mask *grid.Grid[bool]) bool {
	pw, ph := r.pat.Width(), r.pat.Height()
	w := g.Width()
	cells, pattern := g.Data(), r.pat.Data()
	for py := 0; py < ph; py++ {
		row := (anchor.Y+py)*w + anchor.X
		for px := 0; px < pw; px++ {
			i := row + px
			if mask != nil && mask.Data()[i] {
				return false
			}
			want := pattern[py*pw+px]
			if want != r.wildcard && cells[i] != want {
				return false
			}
		}
	}
	return true
}

func (r *Rule[T]) writeAt(dst *grid.Grid[T], anchor geom.Vec, mask *grid.Grid[bool]) {
	pw, ph := r.sub.Width(), r.sub.Height()
	w := dst.Width()
	cells, sub := dst.Data(), r.sub.Data()
	for py := 0; py < ph; py++ {
		row := (anchor.Y+py)*w + anchor.X
		for px := 0; px < pw; px++ {
			i := row + px
			if v := sub[py*pw+px]; v != r.wildcard {
				cells[i] = v
			}
			if mask != nil {
				mask.Data()[i] = true
			}
		}
	}
}
