// Package cli provides the Cobra command structure for rustfix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rustfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root rustfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "rustfix",
		Short: "Apply compiler-suggested fixes to Rust sources",
		Long: `rustfix reads the JSON diagnostics emitted by rustc or cargo
(--error-format=json / --message-format=json) and applies the machine
suggested replacements they carry to the source files they point at.

Files are patched back to front so earlier edits never shift later ones.
Overlapping suggestions, stale spans and binary or generated files are
skipped and reported. Pass --dry-run to preview the changes as a diff.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFixCommand(info))
	rootCmd.AddCommand(newSuggestionsCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
