package tmx

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
)

// Tileset is the metadata of an external .tsx tileset.
type Tileset struct {
	Name      string
	TileSize  geom.Vec
	TileCount int
	Columns   int
	Image     string
}

// LoadTileset reads the tileset at path.
func LoadTileset(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read tileset %s", path)
	}
	var ts xmlTileset
	if err := xml.Unmarshal(data, &ts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tileset %s", path)
	}
	if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "tileset %s has invalid tile size %dx%d", path, ts.TileWidth, ts.TileHeight)
	}
	out := &Tileset{
		Name:      ts.Name,
		TileSize:  geom.V(ts.TileWidth, ts.TileHeight),
		TileCount: ts.TileCount,
		Columns:   ts.Columns,
	}
	if ts.Image != nil {
		out.Image = ts.Image.Source
	}
	return out, nil
}

// ResolveTileset returns the tileset path of res relative to the directory
// of the map file it was loaded from. Absolute paths are returned unchanged.
func ResolveTileset(mapPath string, res *LoadResult) string {
	if res.TilesetPath == "" || filepath.IsAbs(res.TilesetPath) {
		return res.TilesetPath
	}
	return filepath.Join(filepath.Dir(mapPath), filepath.FromSlash(res.TilesetPath))
}

// RelTileset rewrites tileset, a path usable from the working directory,
// relative to the directory outPath will be written to. It falls back to
// tileset when no relative path exists.
func RelTileset(outPath, tileset string) string {
	if tileset == "" {
		return ""
	}
	absTS, err1 := filepath.Abs(tileset)
	absDir, err2 := filepath.Abs(filepath.Dir(outPath))
	if err1 != nil || err2 != nil {
		return tileset
	}
	rel, err := filepath.Rel(absDir, absTS)
	if err != nil {
		return tileset
	}
	return rel
}
