// Package config loads the optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/tisu/config.toml (or
// ~/.config/tisu/config.toml) unless --config names another one:
//
//	wildcard = 4
//	seed = 7
//	layer = 0
//	tile_width = 16
//	tile_height = 16
//
//	[cache]
//	backend = "redis"        # file, redis or none
//	redis_addr = "localhost:6379"
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override file values, and file values override the
// built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/tile"
)

const appName = "tisu"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Wildcard   *uint32 `toml:"wildcard"`
	Seed       uint64  `toml:"seed"`
	Layer      int     `toml:"layer"`
	TileWidth  int     `toml:"tile_width"`
	TileHeight int     `toml:"tile_height"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the rule set cache.
type CacheConfig struct {
	Enabled       bool     `toml:"enabled"`
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures tisu serve.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText parses strings such as "90s" or "720h".
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats d as a duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled: true,
			Backend: BackendFile,
			TTL:     Duration{30 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			MaxBodyBytes: 8 << 20,
		},
	}
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration. An empty path reads the default location,
// where a missing file yields Default(); an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config")
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "cache.redis_addr is required for the redis backend")
	}
	if c.Layer < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "layer must be non-negative, got %d", c.Layer)
	}
	if c.TileWidth < 0 || c.TileHeight < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid tile size %dx%d", c.TileWidth, c.TileHeight)
	}
	if c.Wildcard != nil && *c.Wildcard > tile.MaxIndex {
		return errors.New(errors.ErrCodeInvalidArgument, "wildcard index %d exceeds %d", *c.Wildcard, tile.MaxIndex)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "cache.ttl must not be negative")
	}
	return nil
}

// CacheBackend returns the effective backend, folding Enabled=false into
// BackendNone.
func (c *Config) CacheBackend() string {
	if !c.Cache.Enabled {
		return BackendNone
	}
	return c.Cache.Backend
}
