package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/sidebarsync/internal/config"
	"github.com/harrison/sidebarsync/internal/display"
	"github.com/harrison/sidebarsync/internal/updater"
)

// NewTreeCommand creates and returns the tree subcommand
func NewTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the scanned notes tree and mark entries missing from the outline",
		Long: `Print the notes directory the way the outline would list it: directories
first, then files, each level sorted with Chinese-aware collation.

Entries prefixed with "+ " are not in the outline yet. The outline is not
modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCommandConfig(cmd)
			if err != nil {
				return err
			}
			return treeWithOutput(cfg, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// treeWithOutput renders the tree for cfg to output (for testing)
func treeWithOutput(cfg *config.Config, output io.Writer) error {
	report, err := updater.Sync(cfg, updater.WithDryRun(true))
	if err != nil {
		return fmt.Errorf("failed to scan notes: %w", err)
	}

	missing := make(map[string]bool)
	for _, rel := range report.Result.AddedDirs {
		missing[rel] = true
	}
	for _, rel := range report.Result.AddedFiles {
		missing[rel] = true
	}

	fmt.Fprint(output, display.RenderTree(cfg.NotesDir, report.Tree, missing))
	if n := report.Result.Added(); n > 0 {
		fmt.Fprintf(output, "\n%d entries missing from %s\n", n, report.OutlinePath)
	}
	return nil
}
