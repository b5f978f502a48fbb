// Package cli implements the tisu command-line interface.
//
// The commands cover the whole rewrite workflow: apply runs a filter map
// against an input map, segments lists the rules a filter map defines,
// generate creates city maps to experiment on, preview shows results in
// the terminal and serve exposes the HTTP API. The CLI is built using
// cobra and logs via the charmbracelet/log library.
//
// # Commands
//
//   - apply: Rewrite a map with the rules of a filter map
//   - segments: List the pattern/substitute pairs of a filter map
//   - generate: Generate a city map as TMX or PNG
//   - preview: Browse results interactively
//   - serve: Run the HTTP API
//   - cache: Manage the rule set cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Configuration
//
// Defaults come from the TOML file named by --config, or from
// $XDG_CONFIG_HOME/tisu/config.toml. Flags override file values.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Generated 64x64 map (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
