package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tisu/pkg/generate"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/pipeline"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/tile"
)

// Preview styles
var (
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)

	// tileStyles colour tile indices cyclically.
	tileStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("131")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
	}
)

const (
	glyphTile  = "██"
	glyphEmpty = "· "

	// previewChrome is the number of terminal rows used by the title,
	// the help line and the footer.
	previewChrome = 5
)

// =============================================================================
// PreviewModel - Interactive before/after view
// =============================================================================

// previewSource produces the input grid for a seed and the grid after the
// rules have been applied.
type previewSource func(seed uint64) (input, output *grid.Grid[tile.Tile], err error)

// PreviewModel is the bubbletea model for browsing rewrite results.
type PreviewModel struct {
	Seed      uint64
	ShowInput bool
	Input     *grid.Grid[tile.Tile]
	Output    *grid.Grid[tile.Tile]
	Err       error
	Width     int
	Height    int

	source previewSource
}

// NewPreviewModel creates a preview model and renders the first seed.
func NewPreviewModel(seed uint64, source previewSource) PreviewModel {
	m := PreviewModel{Seed: seed, source: source}
	m.render()
	return m
}

func (m *PreviewModel) render() {
	m.Input, m.Output, m.Err = m.source(m.Seed)
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.Seed++
			m.render()
		case "R":
			if m.Seed > 1 {
				m.Seed--
				m.render()
			}
		case "tab":
			m.ShowInput = !m.ShowInput
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	label := "output"
	if m.ShowInput {
		label = "input"
	}
	b.WriteString(StyleTitle.Render("Preview"))
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  seed %d · %s", m.Seed, label)))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("r re-roll  R back  tab input/output  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(previewErrorStyle.Render(iconError + " " + m.Err.Error()))
		return b.String()
	}

	g := m.Output
	if m.ShowInput {
		g = m.Input
	}
	b.WriteString(renderGrid(g, m.Width/len(glyphEmpty), m.Height-previewChrome))
	b.WriteString("\n\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  %dx%d · %d cells changed",
		g.Width(), g.Height(), m.Input.Diff(m.Output))))

	return b.String()
}

// renderGrid draws g with two terminal columns per cell, cropped to
// maxW x maxH cells. Non-positive limits do not crop.
func renderGrid(g *grid.Grid[tile.Tile], maxW, maxH int) string {
	w, h := g.Width(), g.Height()
	if maxW > 0 && maxW < w {
		w = maxW
	}
	if maxH > 0 && maxH < h {
		h = maxH
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			t, _ := g.Get(geom.V(x, y))
			b.WriteString(renderTile(t))
		}
	}
	return b.String()
}

func renderTile(t tile.Tile) string {
	i, ok := t.Index()
	if !ok {
		return previewDimStyle.Render(glyphEmpty)
	}
	return tileStyles[int(i)%len(tileStyles)].Render(glyphTile)
}

// =============================================================================
// Command
// =============================================================================

// previewOpts holds flags for the preview command.
type previewOpts struct {
	input    string
	filters  string
	layer    int
	size     int
	seed     uint64
	wildcard uint32
	noCache  bool
}

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse rewrite results in the terminal",
		Long: `Show a map before and after applying a filter map, and re-roll the seed
interactively.

Without --input a city map is generated for every seed, so re-rolling
changes both the map and the rule outcomes. Without --filters the input is
shown unchanged.`,
		Example: `  # Try filters on generated cities
  tisu preview --filters filters.tmx

  # Try filters on an existing map
  tisu preview --input city.tmx --filters filters.tmx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := c.previewSource(cmd, opts)
			if err != nil {
				return err
			}

			m := NewPreviewModel(opts.seed, source)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := finalModel.(PreviewModel); ok {
				printInfo("Last seed: %s", StyleNumber.Render(fmt.Sprint(fm.Seed)))
				if fm.Err != nil {
					printError("Last render failed: %v", fm.Err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input TMX map (default: generated city)")
	cmd.Flags().StringVarP(&opts.filters, "filters", "f", "", "filter TMX map")
	cmd.Flags().IntVar(&opts.layer, "layer", 0, "input tile layer")
	cmd.Flags().IntVar(&opts.size, "size", generate.DefaultSize, "edge length of generated cities")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "first seed")
	cmd.Flags().Uint32Var(&opts.wildcard, "wildcard", 0, "tile index that matches any cell (default: empty cell)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rule set cache")

	return cmd
}

// previewSource loads everything that does not depend on the seed once and
// returns a source that does the rest.
func (c *CLI) previewSource(cmd *cobra.Command, opts previewOpts) (previewSource, error) {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	var sets []*rule.RuleSet[tile.Tile]
	if opts.filters != "" {
		wildcard := c.config().Wildcard
		if cmd.Flags().Changed("wildcard") {
			wildcard = &opts.wildcard
		}
		if err := pipeline.ValidateWildcard(wildcard); err != nil {
			return nil, err
		}
		if sets, err = runner.LoadRuleSets(ctx, opts.filters, pipeline.WildcardTile(wildcard)); err != nil {
			return nil, err
		}
	}

	var fixed *grid.Grid[tile.Tile]
	if opts.input != "" {
		if fixed, _, err = runner.LoadInput(opts.input, opts.layer); err != nil {
			return nil, err
		}
	}

	return func(seed uint64) (*grid.Grid[tile.Tile], *grid.Grid[tile.Tile], error) {
		input := fixed
		if input == nil {
			city, err := generate.Generate(generate.Options{Size: geom.V(opts.size, opts.size), Seed: seed})
			if err != nil {
				return nil, nil, err
			}
			input = generate.Tiles(city)
		}
		output, err := pipeline.ApplySeeded(input, sets, seed)
		if err != nil {
			return nil, nil, err
		}
		return input, output, nil
	}, nil
}
