package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/model"
)

// JSONWriter outputs runs in JSON format.
// This format is designed for tool integration and programmatic
// processing, e.g. feeding run results into a status bar widget.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
//  1. It's part of the standard library (no extra dependencies)
//  2. It's sufficient for our needs
//  3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteRun outputs the run result in JSON format.
func (w *JSONWriter) WriteRun(report *model.RunReport) (int, error) {
	return w.writeJSON(report)
}

// historyRecord is the JSON shape of one stored run.
type historyRecord struct {
	ID           int64  `json:"id"`
	StartedAt    string `json:"started_at"`
	PageURL      string `json:"page_url"`
	ImageURL     string `json:"image_url,omitempty"`
	Title        string `json:"title,omitempty"`
	ImagePath    string `json:"image_path,omitempty"`
	BytesWritten int64  `json:"bytes_written,omitempty"`
	EXIFSummary  string `json:"exif_summary,omitempty"`
	Status       string `json:"status"`
	ErrorKind    string `json:"error_kind,omitempty"`
	Error        string `json:"error,omitempty"`
	DurationMS   int64  `json:"duration_ms"`
}

// WriteHistory outputs past runs as a JSON array.
func (w *JSONWriter) WriteHistory(records []journal.Record) (int, error) {
	out := make([]historyRecord, len(records))
	for i, r := range records {
		out[i] = historyRecord{
			ID:           r.ID,
			StartedAt:    r.StartedAt.Format("2006-01-02 15:04:05"),
			PageURL:      r.PageURL,
			ImageURL:     r.ImageURL,
			Title:        r.Title,
			ImagePath:    r.ImagePath,
			BytesWritten: r.BytesWritten,
			EXIFSummary:  r.EXIFSummary,
			Status:       r.Status,
			ErrorKind:    r.ErrorKind,
			Error:        r.Error,
			DurationMS:   r.Duration.Milliseconds(),
		}
	}
	return w.writeJSON(out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
