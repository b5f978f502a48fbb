package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/generate"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/pipeline"
	"github.com/matzehuels/tisu/pkg/tmx"
)

// defaultZoom is the PNG pixel size of one cell.
const defaultZoom = 4

// generateOpts holds flags for the generate command.
type generateOpts struct {
	output  string
	png     string
	width   int
	height  int
	seed    uint64
	zoom    int
	tileset string
}

// generateCommand creates the generate command for city maps.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a city map",
		Long: `Generate a city map by recursively splitting the area with roads and
filling the resulting blocks with buildings and parks.

Cells are tile indices of the materials concrete (0), asphalt (1),
grass (2), hedge (3) and wall (4). The map can be written as a one-layer
TMX file, as a PNG image, or both.`,
		Example: `  # 64x64 map as TMX and PNG
  tisu generate -o city.tmx --png city.png

  # Wide map with a fixed seed
  tisu generate -o city.tmx --width 128 --height 48 --seed 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") && c.config().Seed != 0 {
				opts.seed = c.config().Seed
			}
			return c.runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output TMX file")
	cmd.Flags().StringVar(&opts.png, "png", "", "output PNG image")
	cmd.Flags().IntVar(&opts.width, "width", generate.DefaultSize, "map width in tiles")
	cmd.Flags().IntVar(&opts.height, "height", generate.DefaultSize, "map height in tiles")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&opts.zoom, "zoom", defaultZoom, "PNG pixels per tile")
	cmd.Flags().StringVar(&opts.tileset, "tileset", "", "tileset source written to the TMX file")

	return cmd
}

func (c *CLI) runGenerate(opts generateOpts) error {
	if opts.output == "" && opts.png == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "nothing to write: set --output and/or --png")
	}

	prog := newProgress(c.Logger)
	city, err := generate.Generate(generate.Options{
		Size: geom.V(opts.width, opts.height),
		Seed: opts.seed,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %dx%d map", city.Width(), city.Height()))

	if opts.output != "" {
		tileset := opts.tileset
		if tileset != "" {
			tileset = tmx.RelTileset(opts.output, tileset)
		}
		if err := tmx.Save(opts.output, generate.Tiles(city), c.tileSize(), tileset); err != nil {
			return err
		}
		printFile(opts.output)
	}
	if opts.png != "" {
		if err := generate.SavePNG(opts.png, city, opts.zoom); err != nil {
			return err
		}
		printFile(opts.png)
	}
	if opts.output != "" {
		printNextStep("Rewrite it", "tisu apply "+opts.output+" <filters.tmx> -o out.tmx")
	}
	return nil
}
