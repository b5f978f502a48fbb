package generate

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
)

var palette = [...]color.NRGBA{
	Concrete: {128, 128, 128, 255},
	Asphalt:  {0, 0, 0, 255},
	Grass:    {0, 255, 0, 255},
	Hedge:    {0, 128, 0, 255},
	Wall:     {255, 128, 0, 255},
}

// Color returns the preview colour of m. Unknown materials are magenta.
func (m Material) Color() color.NRGBA {
	if int(m) < len(palette) {
		return palette[m]
	}
	return color.NRGBA{255, 0, 255, 255}
}

// Image renders g with one pixel per cell, scaled by zoom with
// nearest-neighbour sampling.
func Image(g *grid.Grid[Material], zoom int) (image.Image, error) {
	if zoom < 1 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "zoom must be at least 1, got %d", zoom)
	}
	img := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			m, _ := g.Get(geom.V(x, y))
			img.SetNRGBA(x, y, m.Color())
		}
	}
	if zoom == 1 {
		return img, nil
	}
	return imaging.Resize(img, g.Width()*zoom, g.Height()*zoom, imaging.NearestNeighbor), nil
}

// WritePNG encodes the preview of g as PNG.
func WritePNG(w io.Writer, g *grid.Grid[Material], zoom int) error {
	img, err := Image(g, zoom)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// SavePNG writes the preview of g to path, creating parent directories.
func SavePNG(path string, g *grid.Grid[Material], zoom int) error {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return errors.New(errors.ErrCodeInvalidPath, "preview path must end in .png: %s", path)
	}
	img, err := Image(g, zoom)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", filepath.Dir(path))
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save %s", path)
	}
	return nil
}
