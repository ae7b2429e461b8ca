package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/model"
)

// SimpleWriter outputs human-readable text.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
//  1. It works in all terminals without compatibility issues
//  2. It's easier to pipe to files or other tools
//  3. The tool usually runs unattended, writing to a log
type SimpleWriter struct {
	baseWriter

	// verbose enables per-step timing in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-step details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteRun outputs the run result in human-readable format.
func (w *SimpleWriter) WriteRun(report *model.RunReport) (int, error) {
	var sb strings.Builder

	switch report.Status {
	case model.StatusSuccess:
		if report.WallpaperSet {
			sb.WriteString("Wallpaper updated.\n")
		} else {
			sb.WriteString("Run completed (wallpaper unchanged).\n")
		}
	case model.StatusFailed:
		sb.WriteString(fmt.Sprintf("Run failed (%s): %s\n", report.ErrKind, report.Err))
	default:
		sb.WriteString("Run still in progress.\n")
	}

	if report.Picture.Title != "" {
		sb.WriteString(fmt.Sprintf("  Picture:  %s\n", report.Picture.Title))
	}
	if report.Picture.Date != "" {
		sb.WriteString(fmt.Sprintf("  Date:     %s\n", report.Picture.Date))
	}
	if report.Picture.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("  Source:   %s\n", report.Picture.ImageURL))
	}
	if report.ImagePath != "" {
		sb.WriteString(fmt.Sprintf("  Saved to: %s (%s)\n", report.ImagePath, formatBytes(report.BytesWritten)))
	}
	if summary := report.Metadata.Summary(); summary != "" {
		sb.WriteString(fmt.Sprintf("  Camera:   %s\n", summary))
	}
	sb.WriteString(fmt.Sprintf("  Duration: %s\n", report.Duration().Round(timePrecision)))

	if w.verbose {
		for _, step := range report.Steps {
			status := "ok"
			if step.Err != "" {
				status = step.Err
			}
			sb.WriteString(fmt.Sprintf("    %-20s %8s  %s\n", step.Name, step.Duration.Round(timePrecision), status))
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory outputs past runs in human-readable format.
func (w *SimpleWriter) WriteHistory(records []journal.Record) (int, error) {
	var sb strings.Builder

	if len(records) == 0 {
		sb.WriteString("No runs recorded yet.\n")
		return w.output.Write([]byte(sb.String()))
	}

	sb.WriteString(fmt.Sprintf("%-20s  %-8s  %-10s  %s\n", "STARTED", "STATUS", "SIZE", "TITLE"))
	for _, r := range records {
		title := r.Title
		if title == "" {
			title = "-"
		}
		if r.Status == string(model.StatusFailed) {
			title = fmt.Sprintf("%s (%s)", title, r.ErrorKind)
		}
		sb.WriteString(fmt.Sprintf("%-20s  %-8s  %-10s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Status,
			formatBytes(r.BytesWritten),
			title,
		))
	}

	return w.output.Write([]byte(sb.String()))
}

// timePrecision is the rounding applied to displayed durations.
const timePrecision = time.Millisecond

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KiB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1024*1024))
	}
}
