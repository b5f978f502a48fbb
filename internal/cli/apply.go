package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tisu/pkg/geom"
	tisuio "github.com/matzehuels/tisu/pkg/io"
	"github.com/matzehuels/tisu/pkg/pipeline"
)

// applyOpts holds flags for the apply command.
type applyOpts struct {
	output     string
	wildcard   uint32
	seed       uint64
	layer      int
	tileWidth  int
	tileHeight int
	tileset    string
	refresh    bool
	noCache    bool
}

// applyCommand creates the apply command for rewriting a map.
func (c *CLI) applyCommand() *cobra.Command {
	opts := applyOpts{}

	cmd := &cobra.Command{
		Use:   "apply <input.tmx> <filters.tmx>",
		Short: "Rewrite a map with the rules of a filter map",
		Long: `Apply every active tile layer of the filter map, in order, to one tile
layer of the input map.

Each rule set matches against the original input and writes into a shared
output, so later layers see the input rather than earlier layers' output.
Without --output the resulting grid is written to stdout as JSON.`,
		Example: `  # Rewrite city.tmx and save the result
  tisu apply city.tmx filters.tmx -o out/city.tmx

  # Use tile 4 as the wildcard and a fixed seed
  tisu apply city.tmx filters.tmx -o out/city.tmx --wildcard 4 --seed 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.pipelineOptions(cmd, args[0], args[1], opts)
			return c.runApply(cmd, popts, opts.noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output TMX file (default: JSON grid on stdout)")
	cmd.Flags().Uint32Var(&opts.wildcard, "wildcard", 0, "tile index that matches any cell (default: empty cell)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed for rule probabilities")
	cmd.Flags().IntVar(&opts.layer, "layer", 0, "input tile layer to rewrite")
	cmd.Flags().IntVar(&opts.tileWidth, "tile-width", 0, "tile width of the output map (default: input's)")
	cmd.Flags().IntVar(&opts.tileHeight, "tile-height", 0, "tile height of the output map (default: input's)")
	cmd.Flags().StringVar(&opts.tileset, "tileset", "", "tileset source written to the output map")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "decode the filter map even if it is cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rule set cache")

	return cmd
}

// pipelineOptions merges config values and explicitly set flags. Flags win.
func (c *CLI) pipelineOptions(cmd *cobra.Command, input, filters string, opts applyOpts) pipeline.Options {
	cfg := c.config()
	popts := pipeline.Options{
		Input:    input,
		Filters:  filters,
		Output:   opts.output,
		Wildcard: cfg.Wildcard,
		Seed:     cfg.Seed,
		Layer:    cfg.Layer,
		TileSize: geom.V(cfg.TileWidth, cfg.TileHeight),
		Tileset:  opts.tileset,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	}

	flags := cmd.Flags()
	if flags.Changed("wildcard") {
		w := opts.wildcard
		popts.Wildcard = &w
	}
	if flags.Changed("seed") || popts.Seed == 0 {
		popts.Seed = opts.seed
	}
	if flags.Changed("layer") {
		popts.Layer = opts.layer
	}
	if flags.Changed("tile-width") {
		popts.TileSize.X = opts.tileWidth
	}
	if flags.Changed("tile-height") {
		popts.TileSize.Y = opts.tileHeight
	}
	// A half-specified tile size falls back to the input's.
	if popts.TileSize.X <= 0 || popts.TileSize.Y <= 0 {
		popts.TileSize = geom.Vec{}
	}
	return popts
}

func (c *CLI) runApply(cmd *cobra.Command, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		return tisuio.WriteGrid(os.Stdout, res.Grid)
	}

	printSuccess("Rewrote %s", opts.Input)
	printStats(res.Stats, res.CacheHit)
	printFile(opts.Output)
	c.Logger.Debug("run finished", "run", res.RunID, "stats", res.Stats.String())
	return nil
}
