package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/apodwall/internal/config"
	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past wallpaper runs",
		Long: `History lists past wallpaper runs from the local run journal, most
recent first: when each run happened, what picture it fetched, and how
it ended.

Examples:
  # Show the last 20 runs
  apodwall history

  # Show every recorded run
  apodwall history --limit 0

  # Render the history as a Markdown table
  apodwall history --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of runs to show (0 shows all)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown instead of plain text (mutually exclusive with --json)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON instead of plain text (mutually exclusive with --markdown)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if markdown && jsonOut {
		return errors.New("--markdown and --json are mutually exclusive")
	}

	// The journal must already exist: history never creates an empty one.
	j, err := journal.Open(config.XDGDataDir(), journal.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			return errors.New("no run history yet (run `apodwall run` first)")
		}
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer j.Close()

	records, err := j.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	var w report.Writer
	switch {
	case markdown:
		w = report.NewMarkdownWriter(cmd.OutOrStdout())
	case jsonOut:
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	default:
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	if _, err := w.WriteHistory(records); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
