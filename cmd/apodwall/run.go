package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/apodwall/internal/config"
	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/log"
	"github.com/nao1215/apodwall/internal/model"
	"github.com/nao1215/apodwall/internal/pipeline"
	"github.com/nao1215/apodwall/internal/report"
	"github.com/nao1215/apodwall/internal/wallpaper"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch today's picture and set it as wallpaper",
		Long: `Run fetches the Astronomy Picture of the Day page, extracts the
full-resolution image link, downloads the image, and sets it as the
desktop background.

The run succeeds only when every step completes. On a day without a
still image (video entries) the run fails with a parse error and the
current wallpaper stays untouched.

Examples:
  # Fetch today's picture and set it as wallpaper
  apodwall run

  # Download only, leave the desktop alone
  apodwall run --dry-run

  # Fetch a specific archive page
  apodwall run --url https://apod.nasa.gov/apod/ap260830.html

  # Use a custom configuration file
  apodwall run -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("url", "u", config.DefaultPageURL,
		"Picture page URL to fetch")
	cmd.Flags().StringP("output", "o", "",
		"Image destination path (default: XDG data directory)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Download the image but do not change the wallpaper")
	cmd.Flags().BoolP("json", "j", false,
		"Output the run result as JSON")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .apodwall in current or home directory)")

	return cmd
}

// newSetter builds the wallpaper setter for the run. Tests swap in a
// recording fake; the OS shell is the one dependency a test cannot drive.
var newSetter = func() wallpaper.Setter {
	return wallpaper.NewDesktopSetter()
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Console verbosity follows the flag; the log file always gets
	// debug-level records.
	logFile, err := log.OpenLogFile(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := log.NewLogger(cfg.Verbose, os.Stderr, logFile)
	slog.SetDefault(logger)

	// Handle interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runWallpaperRun(ctx, cmd, cfg, logger)
}

// buildRunConfig creates a Config from the config file and flags.
// Precedence: flags > config file > defaults.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly named a config file, it must exist.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("url") {
		if cfg.PageURL, err = cmd.Flags().GetString("url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.ImagePath, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cfg.DryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runWallpaperRun executes the pipeline and reports the outcome.
func runWallpaperRun(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting wallpaper run",
		"pageURL", cfg.PageURL,
		"imagePath", cfg.ImagePath,
		"dryRun", cfg.DryRun,
	)

	runReport := model.NewRunReport(cfg.PageURL)
	p := pipeline.Default(cfg, newSetter(), logger)
	runErr := p.Execute(ctx, runReport)

	// A fresh context: the run context may already be cancelled, and the
	// failed run still belongs in the journal.
	recordRun(context.Background(), cfg, runReport, logger)

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	var w report.Writer
	if jsonOut {
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		w = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(cfg.Verbose))
	}
	if _, err := w.WriteRun(runReport); err != nil {
		return fmt.Errorf("failed to write run result: %w", err)
	}

	if runErr != nil {
		logger.Error("wallpaper run failed",
			"kind", runReport.ErrKind,
			"error", runErr,
		)
		return runErr
	}

	logger.Info("wallpaper run finished",
		"image", runReport.ImagePath,
		"bytes", runReport.BytesWritten,
		"duration", runReport.Duration(),
	)
	return nil
}

// recordRun appends the run to the journal. Journal failures are logged
// and swallowed: the wallpaper outcome matters more than the bookkeeping.
func recordRun(ctx context.Context, cfg *config.Config, runReport *model.RunReport, logger *slog.Logger) {
	j, err := journal.Open(cfg.DBDir, journal.DefaultOptions())
	if err != nil {
		logger.Warn("could not open run journal", "dir", cfg.DBDir, "error", err)
		return
	}
	defer j.Close()

	if _, err := j.Insert(ctx, journal.NewRecord(runReport)); err != nil {
		logger.Warn("could not record run in journal", "error", err)
	}
}
