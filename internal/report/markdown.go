package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/model"
)

// MarkdownWriter outputs runs in Markdown format.
// This format is designed for sharing and for pasting into notes.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteRun outputs the run result in Markdown format.
func (w *MarkdownWriter) WriteRun(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Wallpaper Run")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Status", runStatusText(report)},
			{"Picture", orDash(report.Picture.Title)},
			{"Picture date", orDash(report.Picture.Date)},
			{"Image URL", orDash(report.Picture.ImageURL)},
			{"Saved to", orDash(report.ImagePath)},
			{"Size", formatBytes(report.BytesWritten)},
			{"Camera", orDash(report.Metadata.Summary())},
			{"Duration", report.Duration().Round(timePrecision).String()},
		},
	})
	md.PlainText("")

	if len(report.Steps) > 0 {
		w.writeSteps(md, report)
	}

	return len(md.String()), md.Build()
}

// writeSteps writes the per-step timing table.
func (w *MarkdownWriter) writeSteps(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Steps")
	md.PlainText("")

	rows := make([][]string, len(report.Steps))
	for i, step := range report.Steps {
		outcome := "ok"
		if step.Err != "" {
			outcome = step.Err
		}
		rows[i] = []string{
			step.Name,
			step.Duration.Round(timePrecision).String(),
			outcome,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Step", "Duration", "Outcome"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteHistory outputs past runs as a Markdown table.
func (w *MarkdownWriter) WriteHistory(records []journal.Record) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Wallpaper Run History")
	md.PlainText("")

	if len(records) == 0 {
		md.Note("No runs recorded yet.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		status := r.Status
		if r.Status == string(model.StatusFailed) && r.ErrorKind != "" {
			status += " (" + r.ErrorKind + ")"
		}
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Format("2006-01-02 15:04:05"),
			status,
			orDash(r.Title),
			formatBytes(r.BytesWritten),
			r.Duration.Round(timePrecision).String(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Started", "Status", "Title", "Size", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// runStatusText returns the status cell for a run.
func runStatusText(report *model.RunReport) string {
	switch report.Status {
	case model.StatusSuccess:
		if report.WallpaperSet {
			return "✅ Success"
		}
		return "✅ Success (wallpaper unchanged)"
	case model.StatusFailed:
		return "❌ Failed (" + string(report.ErrKind) + ") - " + report.Err
	default:
		return string(report.Status)
	}
}

// orDash substitutes "-" for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
