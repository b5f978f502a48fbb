package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/pipeline"
	"github.com/matzehuels/tisu/pkg/tmx"
)

// Output formats for the segments command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// pairEntry is the JSON and YAML form of one listed pair.
type pairEntry struct {
	Layer       string    `json:"layer" yaml:"layer"`
	Active      bool      `json:"active" yaml:"active"`
	Pattern     geom.Rect `json:"pattern" yaml:"pattern"`
	Substitute  geom.Rect `json:"substitute" yaml:"substitute"`
	Probability float64   `json:"probability" yaml:"probability"`
	Mode        string    `json:"matching_mode" yaml:"matching_mode"`
	OnlyOnce    bool      `json:"only_once" yaml:"only_once"`
	Annotated   bool      `json:"annotated" yaml:"annotated"`
}

// segmentsCommand creates the segments command for inspecting filter maps.
func (c *CLI) segmentsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "segments <filters.tmx>",
		Short: "List the rules a filter map defines",
		Long: `List every pattern/substitute pair found in the tile layers of a filter
map, together with the properties apply would use for it.

Rectangles are listed in tile coordinates. Pairs of hidden or ignored layers
are listed as inactive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := tmx.Load(args[0])
			if err != nil {
				return err
			}
			pairs, err := pipeline.ListPairs(res)
			if err != nil {
				return err
			}
			return writePairs(os.Stdout, format, pairs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or yaml")
	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{formatTable, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func writePairs(w io.Writer, format string, pairs []pipeline.Pair) error {
	entries := make([]pairEntry, len(pairs))
	for i, p := range pairs {
		entries[i] = pairEntry{
			Layer:       p.Layer,
			Active:      p.Active,
			Pattern:     p.Pattern,
			Substitute:  p.Substitute,
			Probability: p.Properties.Probability,
			Mode:        p.Properties.Mode.String(),
			OnlyOnce:    p.Properties.OnlyOnce,
			Annotated:   p.Annotated,
		}
	}

	switch format {
	case formatTable:
		_, err := fmt.Fprintln(w, pairTable(entries))
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidArgument, "unknown format %q", format)
}

func pairTable(entries []pairEntry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		once := ""
		if e.OnlyOnce {
			once = iconSuccess
		}
		rows[i] = []string{
			e.Layer,
			formatRect(e.Pattern),
			formatRect(e.Substitute),
			strconv.FormatFloat(e.Probability, 'g', -1, 64),
			e.Mode,
			once,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "Pattern", "Substitute", "Prob", "Mode", "Once").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(entries) || !entries[row].Active {
				return base.Foreground(colorDim)
			}
			if col == 3 && entries[row].Annotated {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.Position.X, r.Position.Y, r.Size.X, r.Size.Y)
}
