package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SharkLava/gwern.net/pkg/document"
	"github.com/SharkLava/gwern.net/pkg/layout"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// newLayoutCmd creates the layout command for computing sidenote placements.
func newLayoutCmd(configPath *string) *cobra.Command {
	var (
		output  string
		spacing float64
	)

	cmd := &cobra.Command{
		Use:   "layout [snapshot.(json|toml)]",
		Short: "Compute sidenote placements from a document snapshot",
		Long: `Compute sidenote placements from a document snapshot.

The layout command loads a geometry snapshot, runs one full layout pass -
visibility classification, obstacle collection, placement per column - and
writes the run report with every sidenote's final offset.

A column that cannot fit its sidenotes is reported as overflowed and keeps
its previous placement; the command exits non-zero in that case so build
pipelines notice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutCmd(cmd.Context(), args[0], *configPath, output, spacing)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.report.json)")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "minimum gap between adjacent sidenotes (overrides config and snapshot)")

	return cmd
}

// runLayoutCmd loads the snapshot, runs the engine once, and writes the
// report.
func runLayoutCmd(ctx context.Context, input, configPath, output string, spacing float64) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	snap, err := document.LoadSnapshot(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	opts := layout.DefaultOptions()
	opts.Logger = logger
	opts.Spacing = cfg.Spacing
	if spacing > 0 {
		opts.Spacing = spacing
	}

	driver, _, err := layout.NewFromSnapshot(snap, opts)
	if err != nil {
		return fmt.Errorf("construct driver: %w", err)
	}

	prog := newProgress(logger)
	report, err := driver.RunLayout(ctx)
	if err != nil {
		return fmt.Errorf("run layout: %w", err)
	}
	prog.done(fmt.Sprintf("Placed %d sidenotes", placedCount(report)))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".report.json"
	}
	if err := sidenote.WriteReportFile(report, outputPath); err != nil {
		return fmt.Errorf("write report %s: %w", outputPath, err)
	}

	printReport(report)
	printInfo("report written to %s", outputPath)

	if !report.Success() {
		return fmt.Errorf("layout overflow: one or more columns cannot fit their sidenotes")
	}
	return nil
}

// placedCount sums placements across columns.
func placedCount(r sidenote.RunReport) int {
	total := 0
	for _, c := range r.Columns {
		total += len(c.Placements)
	}
	return total
}

// printReport prints a per-column outcome summary.
func printReport(r sidenote.RunReport) {
	if r.Skipped {
		printInfo("document in footnote mode, nothing to place")
		return
	}
	for _, c := range r.Columns {
		switch c.Outcome {
		case sidenote.OutcomeSuccess:
			printSuccess("%s column: %d placed, %d obstacles", c.Side, len(c.Placements), c.Obstacles)
		case sidenote.OutcomeOverflow:
			printError("%s column: overflow (%s)", c.Side, c.Error)
		default:
			printInfo("%s column: %s", c.Side, c.Outcome)
		}
	}
}
