package rule

import (
	"slices"
	"testing"

	"github.com/matzehuels/tisu/pkg/errors"
)

func TestRuleSetApply(t *testing.T) {
	r1 := mustRule(t, [][]int{{1, 0}}, [][]int{{0, 1}}, 42, DefaultProperties())
	r2 := mustRule(t, [][]int{{1, 1, 1}}, [][]int{{0, 0, 0}}, 42, DefaultProperties())
	set := NewRuleSet(SetProperties{Name: "roads", Visible: true}, r1, r2)

	src := sampleGrid()
	dst := src.Clone()
	if err := set.Apply(src, dst, NewSampler(3)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []int{0, 1, 1, 0, 0, 0, 0, 1, 1}
	if !slices.Equal(dst.Data(), want) {
		t.Errorf("Apply = %v, want %v", dst.Data(), want)
	}
}

func TestRuleSetEmpty(t *testing.T) {
	set := NewRuleSet[int](SetProperties{})
	src := sampleGrid()
	dst := src.Clone()
	if err := set.Apply(src, dst, NewSampler(0)); err != nil {
		t.Fatalf("Apply(empty) = %v, want nil", err)
	}
	if !dst.Equal(src) {
		t.Error("empty rule set changed the destination")
	}
}

func TestRuleSetStopsAtFirstError(t *testing.T) {
	tooWide := mustRule(t, [][]int{{1, 0, 0, 0}}, [][]int{{1, 1, 1, 1}}, 42, DefaultProperties())
	later := mustRule(t, [][]int{{0, 1, 1}}, [][]int{{0, 0, 0}}, 42, DefaultProperties())
	set := NewRuleSet(SetProperties{}, tooWide, later)

	src := sampleGrid()
	dst := src.Clone()
	err := set.Apply(src, dst, Always)
	if !errors.Is(err, errors.ErrCodeInvalidMapSize) {
		t.Errorf("Apply err = %v, want INVALID_MAP_SIZE", err)
	}
	if !dst.Equal(src) {
		t.Error("rules after the failure were applied")
	}
}

func TestRuleSetPush(t *testing.T) {
	set := NewRuleSet[int](SetProperties{})
	r := mustRule(t, [][]int{{1, 0}}, [][]int{{0, 1}}, 42, DefaultProperties())
	set.Push(r)
	if set.Len() != 1 || set.Rules()[0] != r {
		t.Errorf("after Push: Len() = %d, want 1 holding the pushed rule", set.Len())
	}
}

func TestSetPropertiesActive(t *testing.T) {
	tests := []struct {
		props SetProperties
		want  bool
	}{
		{SetProperties{Visible: true}, true},
		{SetProperties{Visible: false}, false},
		{SetProperties{Visible: true, Ignore: true}, false},
	}
	for _, tt := range tests {
		if got := tt.props.Active(); got != tt.want {
			t.Errorf("%+v.Active() = %v, want %v", tt.props, got, tt.want)
		}
	}
}
