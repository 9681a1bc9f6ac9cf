package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SharkLava/gwern.net/pkg/document"
	"github.com/SharkLava/gwern.net/pkg/layout"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// newViewCmd creates the view command for interactive preview.
func newViewCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [snapshot.(json|toml)]",
		Short: "Interactively preview the placed document",
		Long: `Interactively preview the placed document.

The view command opens a scrollable terminal preview of the placed margin
columns. Resizing the terminal fires the engine's geometry-changed trigger
and recomputes the layout; 'r' forces a re-run by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewCmd(cmd.Context(), args[0], *configPath)
		},
	}
	return cmd
}

func runViewCmd(ctx context.Context, input, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	snap, err := document.LoadSnapshot(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	opts := layout.DefaultOptions()
	opts.Logger = loggerFromContext(ctx)
	opts.Spacing = cfg.Spacing

	driver, _, err := layout.NewFromSnapshot(snap, opts)
	if err != nil {
		return fmt.Errorf("construct driver: %w", err)
	}
	if _, err := driver.RunLayout(ctx); err != nil {
		return fmt.Errorf("run layout: %w", err)
	}

	model := newViewModel(ctx, driver)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// viewModel - Interactive Layout Preview
// =============================================================================

// viewModel is the bubbletea model for the interactive preview. The whole
// document is rasterized at a fixed density and the terminal acts as a
// viewport over it.
type viewModel struct {
	ctx    context.Context
	driver *layout.Driver

	lines  []string // rasterized diagram, one entry per terminal row
	offset int      // first visible line
	width  int
	height int
	status string
}

// docRows is the rasterization density: the whole document is drawn at this
// many rows regardless of terminal size.
const docRows = 120

func newViewModel(ctx context.Context, d *layout.Driver) viewModel {
	m := viewModel{ctx: ctx, driver: d, height: 24, width: 80}
	m.rerender()
	return m
}

// rerun fires the geometry-changed trigger and rasterizes the result.
func (m *viewModel) rerun() {
	report, err := m.driver.GeometryChanged(m.ctx)
	switch {
	case err != nil:
		m.status = StyleWarning.Render("run failed: " + err.Error())
	case !report.Success():
		m.status = StyleWarning.Render("overflow: previous placement kept")
	default:
		m.status = StyleSuccess.Render(fmt.Sprintf("placed %d sidenotes", placedCount(report)))
	}
	m.rerender()
}

func (m *viewModel) rerender() {
	m.lines = strings.Split(renderDiagram(m.driver, docRows), "\n")
	if m.offset > len(m.lines)-1 {
		m.offset = 0
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.lines)-m.viewHeight() {
				m.offset++
			}
		case "pgup":
			m.offset -= m.viewHeight()
			if m.offset < 0 {
				m.offset = 0
			}
		case "pgdown", " ":
			m.offset += m.viewHeight()
			if max := len(m.lines) - m.viewHeight(); m.offset > max {
				m.offset = max
			}
			if m.offset < 0 {
				m.offset = 0
			}
		case "g":
			m.offset = 0
		case "G":
			if m.offset = len(m.lines) - m.viewHeight(); m.offset < 0 {
				m.offset = 0
			}
		case "r":
			m.rerun()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Terminal resize is a geometry change from the engine's point of
		// view: recompute from current state.
		m.rerun()
	}
	return m, nil
}

func (m viewModel) viewHeight() int {
	h := m.height - 3 // title + status + help
	if h < 1 {
		h = 1
	}
	return h
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("sidenote preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("↑/↓ scroll  g/G top/bottom  r re-run  q quit"))
	b.WriteString("\n")

	end := m.offset + m.viewHeight()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.status)
	return b.String()
}

// overflowSides lists the sides that overflowed in a report. Used by the
// status line and by tests.
func overflowSides(r sidenote.RunReport) []string {
	var sides []string
	for _, c := range r.Columns {
		if c.Outcome == sidenote.OutcomeOverflow {
			sides = append(sides, c.Side)
		}
	}
	return sides
}
