package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tisu/pkg/cache"
	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/grid"
	tisuio "github.com/matzehuels/tisu/pkg/io"
	"github.com/matzehuels/tisu/pkg/observability"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/tile"
	"github.com/matzehuels/tisu/pkg/tmx"
)

// Runner executes the pipeline with rule set caching. It holds no per-run
// state and may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    TTLRuleSets,
	}
}

// Execute runs import → decode → apply → export. Nothing is written unless
// every earlier stage succeeds.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", res.RunID[:8])

	start := time.Now()
	in, err := tmx.Load(opts.Input)
	res.Stats.ImportTime = time.Since(start)
	observability.Pipeline().OnImport(ctx, opts.Input, layerCount(in), res.Stats.ImportTime, err)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	input, err := selectLayer(in, opts.Layer)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	res.Input = input
	res.Stats.Cells = input.Size().Area()
	logger.Info("imported map", "path", opts.Input, "size", input.Size(), "duration", res.Stats.ImportTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	sets, hit, err := r.loadRuleSets(ctx, opts.Filters, opts.WildcardTile(), opts.Refresh)
	res.Stats.DecodeTime = time.Since(start)
	res.Stats.Sets, res.Stats.Rules = countRules(sets)
	observability.Pipeline().OnDecode(ctx, opts.Filters, res.Stats.Sets, res.Stats.Rules, res.Stats.DecodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	res.RuleSets, res.CacheHit = sets, hit
	logger.Info("loaded rule sets",
		"sets", res.Stats.Sets,
		"rules", res.Stats.Rules,
		"cached", hit,
		"duration", res.Stats.DecodeTime)

	start = time.Now()
	out, err := ApplySeeded(input, sets, opts.Seed)
	res.Stats.ApplyTime = time.Since(start)
	if err == nil {
		res.Stats.Changed = input.Diff(out)
	}
	observability.Pipeline().OnApply(ctx, res.Stats.Sets, res.Stats.Changed, res.Stats.ApplyTime, err)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	res.Grid = out
	logger.Info("applied rules",
		"seed", opts.Seed,
		"changed", res.Stats.Changed,
		"duration", res.Stats.ApplyTime)

	if opts.Output == "" {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	tileSize, tileset := opts.exportHeader(in)
	err = tmx.Save(opts.Output, out, tileSize, tileset)
	res.Stats.ExportTime = time.Since(start)
	observability.Pipeline().OnExport(ctx, opts.Output, res.Stats.ExportTime, err)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	logger.Info("wrote map", "path", opts.Output, "duration", res.Stats.ExportTime)
	return res, nil
}

// LoadRuleSets decodes the filter map at path, consulting the cache first.
func (r *Runner) LoadRuleSets(ctx context.Context, path string, wildcard tile.Tile) ([]*rule.RuleSet[tile.Tile], error) {
	sets, _, err := r.loadRuleSets(ctx, path, wildcard, false)
	return sets, err
}

// LoadInput reads tile layer i of the map at path.
func (r *Runner) LoadInput(path string, layer int) (*grid.Grid[tile.Tile], *tmx.LoadResult, error) {
	res, err := tmx.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := selectLayer(res, layer)
	if err != nil {
		return nil, nil, err
	}
	return g, res, nil
}

func (r *Runner) loadRuleSets(ctx context.Context, path string, wildcard tile.Tile, refresh bool) ([]*rule.RuleSet[tile.Tile], bool, error) {
	if err := errors.ValidateMapPath(path); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	key := r.Keyer.RuleSetKey(cache.Hash(data), wildcard.String())

	if !refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			if sets, err := tisuio.UnmarshalRuleSets(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "rulesets")
				return sets, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "rulesets")
	}

	res, err := tmx.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidFormat), err, "load %s", path)
	}
	sets, err := DecodeRuleSets(res, wildcard)
	if err != nil {
		return nil, false, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidFormat), err, "decode %s", path)
	}

	if encoded, err := tisuio.MarshalRuleSets(sets); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "rulesets", len(encoded))
		}
	}
	return sets, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func layerCount(res *tmx.LoadResult) int {
	if res == nil {
		return 0
	}
	return len(res.MapLayers)
}
