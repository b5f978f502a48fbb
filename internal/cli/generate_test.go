package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/tmx"
)

func TestGenerateCommand(t *testing.T) {
	c := testCLI(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "city.tmx")
	png := filepath.Join(dir, "img", "city.png")

	if err := execute(t, c, "generate", "-o", out, "--png", png, "--width", "40", "--height", "24", "--zoom", "2"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	res, err := tmx.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := res.MapLayers[0].Grid.Size(); got != geom.V(40, 24) {
		t.Errorf("size = %v, want (40, 24)", got)
	}
	if res.TileSize != geom.V(defaultTileSize, defaultTileSize) {
		t.Errorf("tile size = %v", res.TileSize)
	}
	if info, err := os.Stat(png); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestGenerateNothingToWrite(t *testing.T) {
	c := &CLI{Logger: newLogger(io.Discard, LogInfo)}
	err := c.runGenerate(generateOpts{width: 8, height: 8})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	c := &CLI{Logger: newLogger(io.Discard, LogInfo)}
	err := c.runGenerate(generateOpts{output: filepath.Join(t.TempDir(), "a.tmx"), width: -1, height: 8})
	if !errors.Is(err, errors.ErrCodeInvalidMapSize) {
		t.Errorf("err = %v, want INVALID_MAP_SIZE", err)
	}
}
