// Package generate builds procedural city maps: a road network cut by
// recursive splits, with every block turned into a building, a park or
// plain concrete.
//
// The generated grids are the usual input for filter maps. [Tiles] maps
// materials onto tile indexes for TMX export and [Image] renders a colour
// preview.
package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/tile"
)

// Material is the content of a generated cell.
type Material uint8

const (
	Concrete Material = iota
	Asphalt
	Grass
	Hedge
	Wall
)

var materialNames = [...]string{"concrete", "asphalt", "grass", "hedge", "wall"}

func (m Material) String() string {
	if int(m) < len(materialNames) {
		return materialNames[m]
	}
	return "unknown"
}

// Tile returns the tile for m. Tile indexes follow the Material order.
func (m Material) Tile() tile.Tile {
	return tile.Present(uint32(m))
}

// Road describes one level of road splitting.
type Road struct {
	Width    int // road width across the split
	Margin   int // minimum distance from the road to the rect edge
	Material Material
}

// MinSize is the smallest rect dimension a road of this kind can split.
func (r Road) MinSize() int {
	return r.Width + 2*r.Margin
}

// DefaultRoads are tried largest first.
var DefaultRoads = []Road{
	{Width: 7, Margin: 17, Material: Asphalt},
	{Width: 5, Margin: 12, Material: Asphalt},
	{Width: 3, Margin: 8, Material: Asphalt},
}

// blockPath splits a block interior into two lots.
var blockPath = Road{Width: 1, Margin: 4, Material: Concrete}

const (
	// DefaultSize is the default map edge length in tiles.
	DefaultSize = 64

	minBlockSize = 5
	minHedgeSize = 7
	parkOdds     = 10 // one block in parkOdds becomes a park
)

// Options configures a Generator.
type Options struct {
	Size  geom.Vec
	Seed  uint64
	Roads []Road
}

// Generator paints one map. It is not safe for concurrent use.
type Generator struct {
	roads []Road
	rng   *rand.Rand
	grid  *grid.Grid[Material]
}

// New validates opts and returns a generator. A zero size means
// DefaultSize x DefaultSize and nil roads mean DefaultRoads.
func New(opts Options) (*Generator, error) {
	if opts.Size == (geom.Vec{}) {
		opts.Size = geom.V(DefaultSize, DefaultSize)
	}
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidMapSize, "invalid map size %v", opts.Size)
	}
	if opts.Roads == nil {
		opts.Roads = DefaultRoads
	}
	for i, r := range opts.Roads {
		if r.Width <= 0 || r.Margin <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "road %d: width and margin must be positive", i)
		}
	}
	return &Generator{
		roads: opts.Roads,
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5eed)),
		grid:  grid.New[Material](opts.Size),
	}, nil
}

// Generate paints roads and blocks and returns the finished grid.
func Generate(opts Options) (*grid.Grid[Material], error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	return g.Generate()
}

// Generate paints the map. Calling it again repaints from the current
// random state.
func (g *Generator) Generate() (*grid.Grid[Material], error) {
	g.grid.Fill(Concrete)
	var blocks []geom.Rect
	if err := g.roadsIn(g.grid.Bounds(), &blocks); err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if err := g.block(b); err != nil {
			return nil, err
		}
	}
	return g.grid, nil
}

// Tiles converts a material grid to tiles.
func Tiles(g *grid.Grid[Material]) *grid.Grid[tile.Tile] {
	return grid.Map(g, Material.Tile)
}

// roadsIn splits r with roads until no configuration fits and appends the
// remaining blocks.
func (g *Generator) roadsIn(r geom.Rect, blocks *[]geom.Rect) error {
	a, b, ok, err := g.splitWithRoad(r, g.roads)
	if err != nil {
		return err
	}
	if !ok {
		*blocks = append(*blocks, r)
		return nil
	}
	if err := g.roadsIn(a, blocks); err != nil {
		return err
	}
	return g.roadsIn(b, blocks)
}

// splitWithRoad paints a road across the longer side of r using the first
// configuration r is large enough for. Taller rects get a horizontal road.
func (g *Generator) splitWithRoad(r geom.Rect, roads []Road) (geom.Rect, geom.Rect, bool, error) {
	horizontal := r.Size.Y > r.Size.X
	dim := r.Size.X
	split := geom.VSplit
	if horizontal {
		dim = r.Size.Y
		split = geom.HSplit
	}

	for _, road := range roads {
		if dim <= road.MinSize() {
			continue
		}
		start := road.Margin + g.rng.IntN(dim-road.Width-2*road.Margin+1)
		first, rest, err := split(r, start)
		if err != nil {
			return geom.Rect{}, geom.Rect{}, false, err
		}
		pavement, second, err := split(rest, road.Width)
		if err != nil {
			return geom.Rect{}, geom.Rect{}, false, err
		}
		if err := g.grid.FillRect(pavement, road.Material); err != nil {
			return geom.Rect{}, geom.Rect{}, false, err
		}
		return first, second, true, nil
	}
	return geom.Rect{}, geom.Rect{}, false, nil
}

// block frames r with a concrete sidewalk and fills the interior with one
// or two lots.
func (g *Generator) block(r geom.Rect) error {
	inner, err := g.grid.BorderRect(r, Concrete)
	if err != nil || inner.Empty() {
		return err
	}
	a, b, ok, err := g.splitWithRoad(inner, []Road{blockPath})
	if err != nil {
		return err
	}
	if !ok {
		return g.lot(inner)
	}
	if err := g.lot(a); err != nil {
		return err
	}
	return g.lot(b)
}

func (g *Generator) lot(r geom.Rect) error {
	if r.Size.X < minBlockSize || r.Size.Y < minBlockSize {
		return g.grid.FillRect(r, Concrete)
	}
	if g.rng.IntN(parkOdds) == 0 {
		return g.park(r)
	}
	return g.building(r)
}

// park is a hedge-lined lawn crossed by two paths, or plain lawn when too
// small for a hedge.
func (g *Generator) park(r geom.Rect) error {
	if r.Size.X < minHedgeSize || r.Size.Y < minHedgeSize {
		return g.grid.FillRect(r, Grass)
	}
	inner, err := g.grid.BorderRect(r, Hedge)
	if err != nil {
		return err
	}
	if _, _, err := g.grid.HLineRect(r, r.Size.Y/2, Grass); err != nil {
		return err
	}
	if _, _, err := g.grid.VLineRect(r, r.Size.X/2, Grass); err != nil {
		return err
	}
	return g.grid.FillRect(inner, Grass)
}

// building is a walled rect with a door in the bottom wall.
func (g *Generator) building(r geom.Rect) error {
	inner, err := g.grid.BorderRect(r, Wall)
	if err != nil {
		return err
	}
	door := geom.V(r.Position.X+1+g.rng.IntN(r.Size.X-2), r.Position.Y+r.Size.Y-1)
	if err := g.grid.Set(door, Concrete); err != nil {
		return err
	}
	return g.grid.FillRect(inner, Concrete)
}
