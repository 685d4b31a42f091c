package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sidebarsync.
// Running it without a subcommand performs a sync.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sidebarsync",
		Short: "Keep a markdown sidebar or table of contents in sync with a notes directory",
		Long: `Sidebarsync scans a notes directory and adds an outline entry for every
directory and linkable file that the outline does not list yet.

Existing lines are never changed or removed: manual edits, custom labels and
links to files that were deleted are all kept. Two outline styles are
supported:
  - sidebar: entries nest under a root item such as "- [Notes](./README.md)"
  - toc:     entries are listed under a heading such as "## 目录"

Configuration is read from .sidebarsync.yaml, .sidebarsync.yml or
.sidebarsync.toml in the working directory, or from --config.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runSync,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .sidebarsync.{yaml,yml,toml})")
	cmd.PersistentFlags().String("notes-dir", "", "Notes directory to scan (overrides config)")
	cmd.PersistentFlags().String("outline", "", "Outline file, relative to the notes directory unless absolute (overrides config)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	cmd.Flags().Bool("dry-run", false, "Report what would be added without writing the outline")

	cmd.AddCommand(NewTreeCommand())
	cmd.AddCommand(NewCheckCommand())

	return cmd
}
