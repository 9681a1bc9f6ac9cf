package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SharkLava/gwern.net/pkg/document"
	"github.com/SharkLava/gwern.net/pkg/layout"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// newVisualizeCmd creates the visualize command for rendering placed
// columns as a terminal diagram.
func newVisualizeCmd(configPath *string) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "visualize [snapshot.(json|toml)]",
		Short: "Render the placed margin columns as a terminal diagram",
		Long: `Render the placed margin columns as a terminal diagram.

The visualize command runs one layout pass over the snapshot and draws both
margin columns side by side: sidenote blocks, the obstacles they route
around, and the anchors they align to. Useful for eyeballing a placement
without a browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisualizeCmd(cmd.Context(), args[0], *configPath, rows)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 40, "diagram height in terminal rows")

	return cmd
}

func runVisualizeCmd(ctx context.Context, input, configPath string, rows int) error {
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

	report, err := driver.RunLayout(ctx)
	if err != nil {
		return fmt.Errorf("run layout: %w", err)
	}

	fmt.Println(renderDiagram(driver, rows))
	printReport(report)
	return nil
}

// renderDiagram draws both columns over a shared vertical scale. Each
// terminal row covers an equal slice of the taller column; left and right
// cells show sidenote blocks and obstacles, the center gutter shows
// anchors.
func renderDiagram(d *layout.Driver, rows int) string {
	if rows < 4 {
		rows = 4
	}
	left := d.Column(sidenote.SideLeft)
	right := d.Column(sidenote.SideRight)

	height := left.Height()
	if right.Height() > height {
		height = right.Height()
	}
	if height <= 0 {
		return StyleDim.Render("(empty document)")
	}
	unit := height / float64(rows)

	var b strings.Builder
	b.WriteString(StyleTitle.Render("left margin          body          right margin"))
	b.WriteByte('\n')

	for row := 0; row < rows; row++ {
		top := float64(row) * unit
		bottom := top + unit
		b.WriteString(columnCell(left, top, bottom))
		b.WriteString(gutterCell(d, top, bottom))
		b.WriteString(columnCell(right, top, bottom))
		b.WriteByte('\n')
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("scale: 1 row = %.0f units", unit)))
	return b.String()
}

// columnCell renders one row-slice of a column: a note block, an obstacle,
// or empty track.
func columnCell(col *sidenote.Column, top, bottom float64) string {
	const width = 14

	for _, n := range col.Notes {
		if !n.Visible {
			continue
		}
		ext := n.Extent()
		if ext.Top < bottom && top < ext.Bottom {
			label := fmt.Sprintf(" %d ", n.Index)
			fill := width - len(label)
			if fill < 0 {
				fill = 0
			}
			return styleNote.Render("█" + label + strings.Repeat("█", fill))
		}
	}
	for _, o := range col.Obstacles {
		if o.IsSentinel() {
			continue
		}
		if o.Top < bottom && top < o.Bottom {
			return styleObstacle.Render(strings.Repeat("▒", width+1))
		}
	}
	return styleRule.Render("·" + strings.Repeat(" ", width))
}

// gutterCell renders the body gutter with anchor ticks.
func gutterCell(d *layout.Driver, top, bottom float64) string {
	const width = 14

	for _, n := range d.Notes() {
		if !n.Visible {
			continue
		}
		if n.AnchorOffset >= top && n.AnchorOffset < bottom {
			return styleAnchor.Render(fmt.Sprintf(" %*s ", width-2, fmt.Sprintf("[%d]", n.Index)))
		}
	}
	return strings.Repeat(" ", width)
}
