// Package cli provides the Cobra command structure for hrml.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/owencmcgrath/hrml/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root hrml command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "hrml",
		Short: "Transpile home-row markup to HTML",
		Long: `hrml transpiles home-row markup, a plain-text format whose tokens sit on
the home row of the keyboard, into HTML.

It renders single files or stdin to an HTML fragment, a standalone document
or plain text, re-renders on change, checks whole trees for markup that was
rendered on a best-effort basis, and converts Markdown into HRML.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
