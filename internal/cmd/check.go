package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/sidebarsync/internal/config"
	"github.com/harrison/sidebarsync/internal/updater"
)

// NewCheckCommand creates and returns the check subcommand
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the outline lists every directory and file",
		Long: `Compute the same merge as a sync without writing anything.

Prints the lines that a sync would add. Stale links are reported but do not
fail the check.

Exit code: 0 if the outline is up to date, 1 if entries are missing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCommandConfig(cmd)
			if err != nil {
				return err
			}
			return checkWithOutput(cfg, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// checkWithOutput checks the outline for cfg and reports to output (for testing)
func checkWithOutput(cfg *config.Config, output io.Writer) error {
	report, err := updater.Check(cfg)
	if err != nil && !errors.Is(err, updater.ErrOutOfDate) {
		return fmt.Errorf("check failed: %w", err)
	}

	reportWarnings(report, output)

	if err != nil {
		red := color.New(color.FgRed)
		red.Fprintf(output, "✗ %s is missing %d entries:\n", report.OutlinePath, report.Result.Added())
		for _, line := range report.Result.Lines {
			fmt.Fprintf(output, "  + %s\n", line)
		}
		return err
	}

	color.New(color.FgGreen).Fprintf(output, "✓ %s is up to date\n", report.OutlinePath)
	return nil
}
