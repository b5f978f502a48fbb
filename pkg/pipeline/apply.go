package pipeline

import (
	"fmt"

	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/tile"
)

// Apply runs the active rule sets over input in order and returns the
// output grid. Every set matches against input in source mode and writes
// into the same output, so later sets see earlier substitutions only in
// destination mode. Input is not modified.
func Apply(input *grid.Grid[tile.Tile], sets []*rule.RuleSet[tile.Tile], rng rule.Sampler) (*grid.Grid[tile.Tile], error) {
	out := input.Clone()
	for i, s := range sets {
		if !s.Props.Active() {
			continue
		}
		if err := s.Apply(input, out, rng); err != nil {
			return nil, fmt.Errorf("rule set %d (%s): %w", i, s.Props.Name, err)
		}
	}
	return out, nil
}

// ApplySeeded is Apply with a sampler seeded from seed.
func ApplySeeded(input *grid.Grid[tile.Tile], sets []*rule.RuleSet[tile.Tile], seed uint64) (*grid.Grid[tile.Tile], error) {
	return Apply(input, sets, rule.NewSampler(seed))
}
