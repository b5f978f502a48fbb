package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tisu/pkg/cache"
)

// writeConfig writes a config file and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fillCache stores n entries in a file cache at dir.
func fillCache(t *testing.T, dir string, n int) {
	t.Helper()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		key := cache.DefaultKeyer{}.RuleSetKey(cache.Hash([]byte{byte(i)}), "absent")
		if err := fc.Set(context.Background(), key, []byte("[]"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
}

func cachedEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestCachePathCommand(t *testing.T) {
	override := t.TempDir()
	tests := []struct {
		name   string
		config string
		want   func() string
	}{
		{"default", "", func() string { return filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName) }},
		{"config dir", "[cache]\ndir = \"" + filepath.ToSlash(override) + "\"\n", func() string { return filepath.ToSlash(override) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(t)
			args := []string{"cache", "path"}
			if tt.config != "" {
				args = append([]string{"--config", writeConfig(t, tt.config)}, args...)
			}
			root := c.RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs(args)
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want() {
				t.Errorf("cache path = %q, want %q", got, tt.want())
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	c := testCLI(t)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fillCache(t, dir, 3)
	if n := cachedEntries(t, dir); n != 3 {
		t.Fatalf("cached entries = %d, want 3", n)
	}

	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := cachedEntries(t, dir); n != 0 {
		t.Errorf("cached entries after clear = %d, want 0", n)
	}
}

func TestCacheClearCommandEmpty(t *testing.T) {
	c := testCLI(t)
	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
	dir, _ := c.cacheDir()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache clear created %s", dir)
	}
}

func TestCacheClearCommandOtherBackend(t *testing.T) {
	c := testCLI(t)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fillCache(t, dir, 2)

	path := writeConfig(t, "[cache]\nbackend = \"none\"\n")
	if err := execute(t, c, "--config", path, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := cachedEntries(t, dir); n != 2 {
		t.Errorf("cached entries = %d, want 2 left alone", n)
	}
}
