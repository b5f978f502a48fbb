package grid

import (
	"testing"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
)

func TestFill(t *testing.T) {
	g := New[int](geom.V(3, 3))
	g.Fill(7)
	if n := g.Count(func(v int) bool { return v == 7 }); n != 9 {
		t.Errorf("Fill: %d cells set, want 9", n)
	}
}

func TestFillRect(t *testing.T) {
	g := New[int](geom.V(4, 4))
	if err := g.FillRect(geom.MustRect(1, 1, 2, 2), 1); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	want := MustFromRows([][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	})
	if !g.Equal(want) {
		t.Errorf("FillRect = %v, want %v", g.Rows(), want.Rows())
	}

	if err := g.FillRect(geom.MustRect(3, 3, 2, 2), 1); !errors.Is(err, errors.ErrCodeOutOfBounds) {
		t.Errorf("FillRect(outside) err = %v, want OUT_OF_BOUNDS", err)
	}
}

func TestBorderRect(t *testing.T) {
	g := New[int](geom.V(5, 4))
	inner, err := g.BorderRect(g.Bounds(), 1)
	if err != nil {
		t.Fatalf("BorderRect: %v", err)
	}
	want := MustFromRows([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	if !g.Equal(want) {
		t.Errorf("BorderRect = %v, want %v", g.Rows(), want.Rows())
	}
	if inner != geom.MustRect(1, 1, 3, 2) {
		t.Errorf("inner = %v, want (1, 1, 3, 2)", inner)
	}

	thin := New[int](geom.V(2, 5))
	inner, err = thin.BorderRect(thin.Bounds(), 1)
	if err != nil {
		t.Fatalf("BorderRect(thin): %v", err)
	}
	if !inner.Empty() {
		t.Errorf("inner of 2-wide rect = %v, want empty", inner)
	}
}

func TestHLineRect(t *testing.T) {
	g := New[int](geom.V(4, 5))
	area := geom.MustRect(0, 1, 4, 4)
	above, below, err := g.HLineRect(area, 1, 3)
	if err != nil {
		t.Fatalf("HLineRect: %v", err)
	}
	for x := 0; x < 4; x++ {
		if v, _ := g.Get(geom.V(x, 2)); v != 3 {
			t.Errorf("cell (%d, 2) = %d, want 3", x, v)
		}
	}
	if above != geom.MustRect(0, 1, 4, 1) {
		t.Errorf("above = %v, want (0, 1, 4, 1)", above)
	}
	if below != geom.MustRect(0, 3, 4, 2) {
		t.Errorf("below = %v, want (0, 3, 4, 2)", below)
	}

	if _, _, err := g.HLineRect(area, 4, 3); !errors.Is(err, errors.ErrCodeOutOfBounds) {
		t.Errorf("HLineRect(y=4) err = %v, want OUT_OF_BOUNDS", err)
	}
}

func TestHLineEdges(t *testing.T) {
	g := New[int](geom.V(3, 3))
	above, below, err := g.HLine(0, 1)
	if err != nil {
		t.Fatalf("HLine: %v", err)
	}
	if !above.Empty() {
		t.Errorf("above first row = %v, want empty", above)
	}
	if below != geom.MustRect(0, 1, 3, 2) {
		t.Errorf("below = %v, want (0, 1, 3, 2)", below)
	}
}

func TestVLine(t *testing.T) {
	g := New[int](geom.V(5, 2))
	left, right, err := g.VLine(2, 1)
	if err != nil {
		t.Fatalf("VLine: %v", err)
	}
	want := MustFromRows([][]int{
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
	})
	if !g.Equal(want) {
		t.Errorf("VLine = %v, want %v", g.Rows(), want.Rows())
	}
	if left != geom.MustRect(0, 0, 2, 2) || right != geom.MustRect(3, 0, 2, 2) {
		t.Errorf("sides = %v, %v, want (0, 0, 2, 2), (3, 0, 2, 2)", left, right)
	}

	_, right, _ = g.VLine(4, 1)
	if !right.Empty() {
		t.Errorf("right of last column = %v, want empty", right)
	}

	if _, _, err := g.VLineRect(geom.MustRect(4, 0, 2, 2), 0, 1); !errors.Is(err, errors.ErrCodeOutOfBounds) {
		t.Errorf("VLineRect(outside) err = %v, want OUT_OF_BOUNDS", err)
	}
}
