package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/tile"
)

type gridJSON struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Cells  []tile.Tile `json:"cells"`
}

// WriteGrid encodes g as JSON and writes it to w.
func WriteGrid(w io.Writer, g *grid.Grid[tile.Tile]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gridJSON{Width: g.Width(), Height: g.Height(), Cells: g.Data()}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode grid")
	}
	return nil
}

// ReadGrid decodes a JSON grid from r. It does not close r.
func ReadGrid(r io.Reader) (*grid.Grid[tile.Tile], error) {
	var data gridJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode grid")
	}
	if data.Width <= 0 || data.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid grid size %dx%d", data.Width, data.Height)
	}
	if len(data.Cells) != data.Width*data.Height {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"grid has %d cells, want %d", len(data.Cells), data.Width*data.Height)
	}
	g := grid.New[tile.Tile](geom.V(data.Width, data.Height))
	copy(g.Data(), data.Cells)
	return g, nil
}

// ImportGrid reads a JSON grid file at path.
func ImportGrid(path string) (*grid.Grid[tile.Tile], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadGrid(f)
}

// ExportGrid writes g to a JSON file at path.
func ExportGrid(g *grid.Grid[tile.Tile], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteGrid(f, g)
}
