// Package pipeline runs the import → decode → apply → export flow shared by
// the CLI and the HTTP server.
//
// # Stages
//
//  1. Import: read the input map and select one tile layer as the grid.
//  2. Decode: turn every active tile layer of the filter map into a
//     [rule.RuleSet], using [segment.Extract] to find pattern/substitute
//     pairs and the filter map's object layers for rule properties.
//  3. Apply: run the rule sets in layer order. Every set reads the original
//     input and writes into one shared output grid.
//  4. Export: write the output grid as a one-layer TMX map.
//
// Decoded rule sets are cached by the content hash of the filter file and
// the wildcard, so repeated runs against an unchanged filter map skip the
// decode stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "city.tmx",
//	    Filters: "filters.tmx",
//	    Output:  "out/city.tmx",
//	    Seed:    7,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Stats.Changed, "cells changed")
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/tile"
	"github.com/matzehuels/tisu/pkg/tmx"
)

const (
	// DefaultSeed seeds the sampler when Options.Seed is zero.
	DefaultSeed = uint64(42)

	// TTLRuleSets is how long decoded rule sets stay cached.
	TTLRuleSets = 30 * 24 * time.Hour
)

// Options configures a pipeline run.
type Options struct {
	Input   string `json:"input"`
	Filters string `json:"filters"`
	Output  string `json:"output,omitempty"`

	// Wildcard is the tile index that matches anything in patterns and
	// keeps the existing cell in substitutes. Nil uses the empty cell.
	Wildcard *uint32 `json:"wildcard,omitempty"`

	Seed  uint64 `json:"seed,omitempty"`
	Layer int    `json:"layer,omitempty"` // input tile layer to process

	// TileSize and Tileset override the values written to the output map.
	// They default to the input map's.
	TileSize geom.Vec `json:"tile_size,omitempty"`
	Tileset  string   `json:"tileset,omitempty"`

	// Refresh skips the rule set cache lookup.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	RunID    string
	Input    *grid.Grid[tile.Tile]
	Grid     *grid.Grid[tile.Tile]
	RuleSets []*rule.RuleSet[tile.Tile]
	Stats    Stats
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sets       int // active rule sets
	Rules      int // rules in active sets
	Cells      int
	Changed    int
	ImportTime time.Duration
	DecodeTime time.Duration
	ApplyTime  time.Duration
	ExportTime time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "input map is required")
	}
	if o.Filters == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "filter map is required")
	}
	for _, p := range []string{o.Input, o.Filters} {
		if err := errors.ValidateMapPath(p); err != nil {
			return err
		}
	}
	if o.Output != "" {
		if err := errors.ValidateMapPath(o.Output); err != nil {
			return err
		}
	}
	if o.Layer < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "layer must be non-negative, got %d", o.Layer)
	}
	if o.TileSize.Negative() {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid tile size %v", o.TileSize)
	}
	if err := ValidateWildcard(o.Wildcard); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// WildcardTile returns the wildcard as a tile.
func (o *Options) WildcardTile() tile.Tile {
	return WildcardTile(o.Wildcard)
}

// ValidateWildcard fails with INVALID_ARGUMENT if index is set beyond
// [tile.MaxIndex].
func ValidateWildcard(index *uint32) error {
	if index != nil && *index > tile.MaxIndex {
		return errors.New(errors.ErrCodeInvalidArgument, "wildcard index %d exceeds %d", *index, tile.MaxIndex)
	}
	return nil
}

// WildcardTile converts an optional tile index into the wildcard tile.
func WildcardTile(index *uint32) tile.Tile {
	if index == nil {
		return tile.Absent()
	}
	return tile.Present(*index)
}

// exportHeader returns the tile size and tileset path for the output map.
func (o *Options) exportHeader(in *tmx.LoadResult) (geom.Vec, string) {
	size := in.TileSize
	if o.TileSize.X > 0 && o.TileSize.Y > 0 {
		size = o.TileSize
	}
	tileset := o.Tileset
	if tileset == "" {
		tileset = tmx.ResolveTileset(o.Input, in)
	}
	return size, tmx.RelTileset(o.Output, tileset)
}

// selectLayer returns the grid of tile layer i.
func selectLayer(res *tmx.LoadResult, i int) (*grid.Grid[tile.Tile], error) {
	if i >= len(res.MapLayers) {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"layer %d out of range: map has %d tile layers", i, len(res.MapLayers))
	}
	return res.MapLayers[i].Grid, nil
}

func countRules(sets []*rule.RuleSet[tile.Tile]) (active, rules int) {
	for _, s := range sets {
		if s.Props.Active() {
			active++
			rules += s.Len()
		}
	}
	return active, rules
}

func (s Stats) String() string {
	return fmt.Sprintf("%d sets, %d rules, %d/%d cells changed", s.Sets, s.Rules, s.Changed, s.Cells)
}
