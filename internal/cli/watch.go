package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/SharkLava/gwern.net/pkg/document"
	"github.com/SharkLava/gwern.net/pkg/layout"
)

// newWatchCmd creates the watch command for continuous re-layout.
func newWatchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [snapshot.(json|toml)]",
		Short: "Re-run layout whenever the snapshot file changes",
		Long: `Re-run layout whenever the snapshot file changes.

The watch command treats writes to the snapshot file as the engine's
geometry-changed trigger: every change reloads the snapshot and runs a
fresh layout pass, printing the outcome. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchCmd(cmd.Context(), args[0], *configPath)
		},
	}
	return cmd
}

func runWatchCmd(ctx context.Context, input, configPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	runOnce := func() {
		snap, err := document.LoadSnapshot(input)
		if err != nil {
			printError("load snapshot: %v", err)
			return
		}
		opts := layout.DefaultOptions()
		opts.Logger = logger
		opts.Spacing = cfg.Spacing

		driver, _, err := layout.NewFromSnapshot(snap, opts)
		if err != nil {
			printError("construct driver: %v", err)
			return
		}
		report, err := driver.RunLayout(ctx)
		if err != nil {
			printError("run layout: %v", err)
			return
		}
		switch {
		case report.Skipped:
			printInfo("footnote mode, skipped")
		case report.Success():
			printSuccess("placed %d sidenotes (run %s)", placedCount(report), report.RunID[:8])
		default:
			printWarning("overflow in %s column(s), previous placement kept",
				strings.Join(overflowSides(report), ", "))
		}
	}

	printInfo("watching %s", input)
	runOnce()

	target := filepath.Clean(input)
	// Editors produce bursts of events per save; coalesce them.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			runOnce()
		}
	}
}
