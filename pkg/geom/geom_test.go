package geom

import (
	"testing"

	"github.com/matzehuels/tisu/pkg/errors"
)

func TestNewRect(t *testing.T) {
	r, err := NewRect(V(1, 2), V(3, 4))
	if err != nil {
		t.Fatalf("NewRect: %v", err)
	}
	if r.Position != V(1, 2) || r.Size != V(3, 4) {
		t.Errorf("NewRect = %v, want (1, 2, 3, 4)", r)
	}

	if _, err := NewRect(V(1, 2), V(-3, 4)); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("NewRect(negative size) err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := RectFromXYWH(1, 2, -3, -4); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("RectFromXYWH(negative) err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestContainsPoint(t *testing.T) {
	r := MustRect(0, 0, 10, 10)

	tests := []struct {
		p    Vec
		want bool
	}{
		{V(0, 0), true},
		{V(9, 9), true},
		{V(10, 10), false},
		{V(10, 0), false},
		{V(-1, 0), false},
	}
	for _, tt := range tests {
		if got := r.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestContainsRect(t *testing.T) {
	r := MustRect(1, 1, 10, 10)

	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"top left corner", MustRect(1, 1, 3, 3), true},
		{"bottom right corner", MustRect(8, 8, 3, 3), true},
		{"itself", r, true},
		{"outside top left", MustRect(0, 0, 3, 3), false},
		{"outside bottom right", MustRect(8, 8, 4, 4), false},
		{"enclosing", MustRect(0, 0, 12, 12), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ContainsRect(tt.o); got != tt.want {
				t.Errorf("ContainsRect(%v) = %v, want %v", tt.o, got, tt.want)
			}
		})
	}
}

func TestHSplit(t *testing.T) {
	upper, lower, err := HSplit(MustRect(2, 3, 4, 10), 4)
	if err != nil {
		t.Fatalf("HSplit: %v", err)
	}
	if upper != MustRect(2, 3, 4, 4) {
		t.Errorf("upper = %v, want (2, 3, 4, 4)", upper)
	}
	if lower != MustRect(2, 7, 4, 6) {
		t.Errorf("lower = %v, want (2, 7, 4, 6)", lower)
	}

	for _, h := range []int{0, 10, 11} {
		if _, _, err := HSplit(MustRect(0, 0, 4, 10), h); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("HSplit(h=%d) err = %v, want INVALID_ARGUMENT", h, err)
		}
	}
}

func TestVSplit(t *testing.T) {
	left, right, err := VSplit(MustRect(2, 3, 10, 4), 3)
	if err != nil {
		t.Fatalf("VSplit: %v", err)
	}
	if left != MustRect(2, 3, 3, 4) {
		t.Errorf("left = %v, want (2, 3, 3, 4)", left)
	}
	if right != MustRect(5, 3, 7, 4) {
		t.Errorf("right = %v, want (5, 3, 7, 4)", right)
	}

	if _, _, err := VSplit(MustRect(0, 0, 1, 1), 1); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("VSplit(width 1) err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestSides(t *testing.T) {
	r := MustRect(1, 1, 5, 5)

	tests := []struct {
		name  string
		fn    func(Rect, int) (Rect, error)
		at    int
		want  Rect
		empty bool
	}{
		{"above middle", Above, 2, MustRect(1, 1, 5, 2), false},
		{"above first row", Above, 0, Rect{}, true},
		{"below middle", Below, 2, MustRect(1, 4, 5, 2), false},
		{"below last row", Below, 4, Rect{}, true},
		{"left middle", Left, 1, MustRect(1, 1, 1, 5), false},
		{"left first column", Left, 0, Rect{}, true},
		{"right middle", Right, 1, MustRect(3, 1, 3, 5), false},
		{"right last column", Right, 4, Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(r, tt.at)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if got.Empty() != tt.empty {
				t.Errorf("Empty() = %v, want %v", got.Empty(), tt.empty)
			}
			if !tt.empty && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	for _, fn := range []func(Rect, int) (Rect, error){Above, Below, Left, Right} {
		if _, err := fn(r, 5); !errors.Is(err, errors.ErrCodeOutOfBounds) {
			t.Errorf("side(5) err = %v, want OUT_OF_BOUNDS", err)
		}
	}
}
