package tmx

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/tile"
)

// LoadResult is everything tisu reads from a map file.
type LoadResult struct {
	MapLayers      []MapLayer
	PropertyLayers []PropertyLayer
	// TilesetPath is the source of the first external tileset, as written
	// in the map (usually relative to the map file). Empty for maps whose
	// first tileset is embedded.
	TilesetPath string
	TileSize    geom.Vec
	Size        geom.Vec
	Orientation string
}

// MapLayer is a decoded tile layer.
type MapLayer struct {
	Name       string
	Visible    bool
	Properties map[string]string
	Grid       *grid.Grid[tile.Tile]
}

// PropertyLayer is an object layer of annotation rects.
type PropertyLayer struct {
	Name  string
	Rects []PropertyRect
}

// PropertyRect is a rectangle object in tile coordinates.
type PropertyRect struct {
	Rect       geom.Rect
	Properties map[string]string
}

// Load reads and decodes the map at path.
func Load(path string) (*LoadResult, error) {
	if err := errors.ValidateMapPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	res, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidFormat), err, "load %s", path)
	}
	return res, nil
}

// Decode reads a TMX document from r. It does not close r.
func Decode(r io.Reader) (*LoadResult, error) {
	var m xmlMap
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode map")
	}
	if m.Infinite != 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "infinite maps are not supported")
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid tile size %dx%d", m.TileWidth, m.TileHeight)
	}

	res := &LoadResult{
		TileSize:    geom.V(m.TileWidth, m.TileHeight),
		Size:        geom.V(m.Width, m.Height),
		Orientation: m.Orientation,
	}
	if len(m.Tilesets) > 0 {
		res.TilesetPath = m.Tilesets[0].Source
	}
	if err := res.addLayers(m.Layers, true, nil); err != nil {
		return nil, err
	}
	return res, nil
}

func (res *LoadResult) addLayers(layers []xmlLayer, visible bool, inherited map[string]string) error {
	for _, l := range layers {
		props := mergeProps(inherited, properties(l.Properties))
		switch l.XMLName.Local {
		case "layer":
			g, err := decodeLayer(l)
			if err != nil {
				return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidFormat), err, "layer %q", l.Name)
			}
			res.MapLayers = append(res.MapLayers, MapLayer{
				Name:       l.Name,
				Visible:    visible && l.visible(),
				Properties: props,
				Grid:       g,
			})
		case "objectgroup":
			res.PropertyLayers = append(res.PropertyLayers, res.decodeObjects(l))
		case "group":
			if err := res.addLayers(l.Layers, visible && l.visible(), props); err != nil {
				return err
			}
		}
	}
	return nil
}

func mergeProps(parent, child map[string]string) map[string]string {
	if len(parent) == 0 {
		return child
	}
	out := make(map[string]string, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func (res *LoadResult) decodeObjects(l xmlLayer) PropertyLayer {
	pl := PropertyLayer{Name: l.Name}
	ts := res.TileSize
	for _, o := range l.Objects {
		if !o.isRect() {
			continue
		}
		x, y := int(math.Round(o.X)), int(math.Round(o.Y))
		w, h := int(math.Round(o.Width)), int(math.Round(o.Height))
		if x < 0 || y < 0 || w <= 0 || h <= 0 {
			continue
		}
		pl.Rects = append(pl.Rects, PropertyRect{
			Rect: geom.Rect{
				Position: geom.V(x/ts.X, y/ts.Y),
				Size:     geom.V(w/ts.X, h/ts.Y),
			},
			Properties: properties(o.Properties),
		})
	}
	return pl
}

func decodeLayer(l xmlLayer) (*grid.Grid[tile.Tile], error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid layer size %dx%d", l.Width, l.Height)
	}
	if l.Data == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing data")
	}
	if len(l.Data.Chunks) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "chunked layer data is not supported")
	}
	gids, err := decodeGIDs(l.Data)
	if err != nil {
		return nil, err
	}
	want := l.Width * l.Height
	if len(gids) != want {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "layer has %d tiles, want %d", len(gids), want)
	}
	g := grid.New[tile.Tile](geom.V(l.Width, l.Height))
	cells := g.Data()
	for i, gid := range gids {
		cells[i] = tile.FromGID(gid)
	}
	return g, nil
}

func decodeGIDs(d *xmlData) ([]uint32, error) {
	switch d.Encoding {
	case "":
		gids := make([]uint32, len(d.Tiles))
		for i, t := range d.Tiles {
			gids[i] = t.GID
		}
		return gids, nil
	case "csv":
		return decodeCSV(d.Text)
	case "base64":
		return decodeBase64(d.Text, d.Compression)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown data encoding %q", d.Encoding)
}

func decodeCSV(text string) ([]uint32, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	gids := make([]uint32, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "csv tile %d", i)
		}
		gids[i] = uint32(n)
	}
	return gids, nil
}

func decodeBase64(text, compression string) ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "base64 data")
	}
	if raw, err = decompress(raw, compression); err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "data length %d is not a multiple of 4", len(raw))
	}
	gids := make([]uint32, len(raw)/4)
	for i := range gids {
		gids[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return gids, nil
}

func decompress(raw []byte, compression string) ([]byte, error) {
	var (
		r   io.Reader
		err error
	)
	switch compression {
	case "":
		return raw, nil
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(raw))
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(raw))
	case "zstd":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(bytes.NewReader(raw))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown compression %q", compression)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s data", compression)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s data", compression)
	}
	return out, nil
}
