package tmx

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/tile"
)

// Encode writes g as a single-layer orthogonal TMX map to w.
func Encode(w io.Writer, g *grid.Grid[tile.Tile], tileSize geom.Vec, tilesetPath string) error {
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid tile size %v", tileSize)
	}
	m := outMap{
		Version:      "1.10",
		TiledVersion: "1.11.0",
		Orientation:  "orthogonal",
		RenderOrder:  "right-down",
		Width:        g.Width(),
		Height:       g.Height(),
		TileWidth:    tileSize.X,
		TileHeight:   tileSize.Y,
		NextLayerID:  2,
		NextObjectID: 1,
		Tileset:      outTileset{FirstGID: 1, Source: filepath.ToSlash(tilesetPath)},
		Layer: outLayer{
			ID:     1,
			Name:   "Tile Layer 1",
			Width:  g.Width(),
			Height: g.Height(),
			Data:   outData{Encoding: "csv", Text: encodeCSV(g)},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write map")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode map")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write map")
	}
	return nil
}

// encodeCSV lays the GIDs out one row per line, the way Tiled does.
func encodeCSV(g *grid.Grid[tile.Tile]) string {
	var b strings.Builder
	b.WriteByte('\n')
	cells := g.Data()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			b.WriteString(strconv.FormatUint(uint64(cells[y*g.Width()+x].GID()), 10))
			if x < g.Width()-1 || y < g.Height()-1 {
				b.WriteByte(',')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Save writes g to path atomically: the map is encoded into a temporary file
// next to path, which is renamed over path only once fully written.
func Save(path string, g *grid.Grid[tile.Tile], tileSize geom.Vec, tilesetPath string) error {
	if err := errors.ValidateMapPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
	}
	f, err := os.CreateTemp(dir, ".tisu-*.tmx")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temp map")
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := Encode(f, g, tileSize, tilesetPath); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rename to %s", path)
	}
	return nil
}
