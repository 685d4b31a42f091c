package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/sidebarsync/internal/config"
	"github.com/harrison/sidebarsync/internal/display"
	"github.com/harrison/sidebarsync/internal/logger"
	"github.com/harrison/sidebarsync/internal/models"
	"github.com/harrison/sidebarsync/internal/updater"
)

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return syncWithOutput(cfg, dryRun, cmd.OutOrStdout())
}

// loadCommandConfig loads configuration from --config or the working
// directory, applies flag overrides and validates the result.
func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil, fmt.Errorf("failed to access config file %s: %w", configPath, statErr)
		}
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(
		changedString(cmd, "notes-dir"),
		changedString(cmd, "outline"),
		changedString(cmd, "log-level"),
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// changedString returns the flag value only when it was set on the command line
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// syncWithOutput runs one sync and reports the outcome to output (for testing)
func syncWithOutput(cfg *config.Config, dryRun bool, output io.Writer) error {
	log := logger.NewConsoleLogger(output, cfg.LogLevel)

	var metrics updater.SyncMetrics
	report, err := updater.Sync(cfg,
		updater.WithDryRun(dryRun),
		updater.WithLogger(log),
		updater.WithMonitor(func(m updater.SyncMetrics) { metrics = m }),
	)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	for _, line := range report.Result.Lines {
		log.LogTrace("+ " + line)
	}

	log.LogSummary(models.SyncSummary{
		OutlinePath: report.OutlinePath,
		AddedFiles:  len(report.Result.AddedFiles),
		AddedDirs:   len(report.Result.AddedDirs),
		Stale:       len(report.Result.Stale),
		Written:     report.Written,
		DryRun:      dryRun,
		Duration:    metrics.Duration,
	})

	reportWarnings(report, output)
	return nil
}

// reportWarnings displays stale links and unreadable directories
func reportWarnings(report *updater.Report, output io.Writer) {
	if len(report.ScanErrors) > 0 {
		display.WarnScanErrors(report.ScanErrors).Display(output)
	}
	if len(report.Result.Stale) > 0 {
		display.WarnStaleLinks(report.Result.Stale).Display(output)
	}
}
