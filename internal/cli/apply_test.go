package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tisu/internal/config"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/tile"
	"github.com/matzehuels/tisu/pkg/tmx"
)

const testInputMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="3" height="1" tilewidth="16" tileheight="16">
 <tileset firstgid="1" source="tiles.tsx"/>
 <layer id="1" name="ground" width="3" height="1">
  <data encoding="csv">2,1,2</data>
 </layer>
</map>
`

// testFilterMap rewrites tile 1 to tile 2 with probability 1.
const testFilterMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="3" height="1" tilewidth="16" tileheight="16">
 <tileset firstgid="1" source="tiles.tsx"/>
 <layer id="1" name="swap" width="3" height="1">
  <data encoding="csv">2,0,3</data>
 </layer>
 <objectgroup id="2" name="props">
  <object id="1" x="0" y="0" width="48" height="16">
   <properties><property name="matching_mode" value="destination"/></properties>
  </object>
 </objectgroup>
</map>
`

func writeMaps(t *testing.T) (dir, input, filters string) {
	t.Helper()
	dir = t.TempDir()
	input = filepath.Join(dir, "input.tmx")
	filters = filepath.Join(dir, "filters.tmx")
	if err := os.WriteFile(input, []byte(testInputMap), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filters, []byte(testFilterMap), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, input, filters
}

func TestApplyCommand(t *testing.T) {
	c := testCLI(t)
	dir, input, filters := writeMaps(t)
	out := filepath.Join(dir, "out", "result.tmx")

	if err := execute(t, c, "apply", input, filters, "-o", out); err != nil {
		t.Fatalf("apply: %v", err)
	}

	res, err := tmx.Load(out)
	if err != nil {
		t.Fatalf("Load(output): %v", err)
	}
	want := grid.MustFromRows([][]tile.Tile{{tile.Present(2), tile.Present(0), tile.Present(2)}})
	if got := res.MapLayers[0].Grid; !got.Equal(want) {
		t.Errorf("output = %v, want %v", got.Rows(), want.Rows())
	}
	if res.TilesetPath != filepath.Join("..", "tiles.tsx") {
		t.Errorf("tileset = %q, want ../tiles.tsx", res.TilesetPath)
	}

	cacheDir, _ := defaultCacheDir()
	if _, err := os.Stat(cacheDir); err != nil {
		t.Errorf("file cache not created: %v", err)
	}
}

func TestApplyCommandNoCache(t *testing.T) {
	c := testCLI(t)
	dir, input, filters := writeMaps(t)

	if err := execute(t, c, "apply", input, filters, "-o", filepath.Join(dir, "out.tmx"), "--no-cache"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	cacheDir, _ := defaultCacheDir()
	if _, err := os.Stat(cacheDir); !os.IsNotExist(err) {
		t.Errorf("cache dir exists with --no-cache: %v", err)
	}
}

func TestApplyCommandErrors(t *testing.T) {
	_, input, filters := writeMaps(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing args", []string{"apply", input}},
		{"missing input", []string{"apply", filepath.Join(t.TempDir(), "nope.tmx"), filters}},
		{"bad layer", []string{"apply", input, filters, "--layer", "3"}},
		{"bad output", []string{"apply", input, filters, "-o", "out.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(t)
			if err := execute(t, c, tt.args...); err == nil {
				t.Errorf("apply %v succeeded, want error", tt.args[1:])
			}
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	wildcard := uint32(5)
	cfg := config.Default()
	cfg.Wildcard = &wildcard
	cfg.Seed = 11
	cfg.Layer = 2
	cfg.TileWidth = 32

	tests := []struct {
		name         string
		args         []string
		wantSeed     uint64
		wantLayer    int
		wantWildcard tile.Tile
		wantTileSize geom.Vec
	}{
		{"config values", nil, 11, 2, tile.Present(5), geom.Vec{}},
		{"flags win", []string{"--seed", "3", "--layer", "0", "--wildcard", "1"}, 3, 0, tile.Present(1), geom.Vec{}},
		{"tile size", []string{"--tile-height", "8"}, 11, 2, tile.Present(5), geom.V(32, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{Logger: newLogger(io.Discard, LogInfo), cfg: cfg}
			cmd := c.applyCommand()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			var opts applyOpts
			opts.seed, _ = cmd.Flags().GetUint64("seed")
			opts.layer, _ = cmd.Flags().GetInt("layer")
			opts.wildcard, _ = cmd.Flags().GetUint32("wildcard")
			opts.tileWidth, _ = cmd.Flags().GetInt("tile-width")
			opts.tileHeight, _ = cmd.Flags().GetInt("tile-height")
			got := c.pipelineOptions(cmd, "in.tmx", "filters.tmx", opts)

			if got.Seed != tt.wantSeed || got.Layer != tt.wantLayer {
				t.Errorf("seed, layer = %d, %d, want %d, %d", got.Seed, got.Layer, tt.wantSeed, tt.wantLayer)
			}
			if w := got.WildcardTile(); w != tt.wantWildcard {
				t.Errorf("wildcard = %v, want %v", w, tt.wantWildcard)
			}
			if got.TileSize != tt.wantTileSize {
				t.Errorf("tile size = %v, want %v", got.TileSize, tt.wantTileSize)
			}
		})
	}
}
