package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SharkLava/gwern.net/pkg/buildinfo"
)

// Execute runs the sidenote CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (layout,
// visualize, view, watch, serve), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "sidenote",
		Short: "sidenote places margin annotations beside long-form documents",
		Long: `sidenote is the layout engine that places footnote annotations as
sidenotes: blocks of text in the left and right margin columns of a wide
document, vertically aligned with the references that own them, packed so
that nothing overlaps and wide tables or figures are routed around.

Commands operate on document geometry snapshots: JSON or TOML captures of a
page's anchors, disclosure regions, and measured element boxes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/sidenote/config.toml)")

	root.AddCommand(newLayoutCmd(&configPath))
	root.AddCommand(newVisualizeCmd(&configPath))
	root.AddCommand(newViewCmd(&configPath))
	root.AddCommand(newWatchCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root.ExecuteContext(ctx)
}
