package report

import (
	"io"

	"github.com/nao1215/apodwall/internal/journal"
	"github.com/nao1215/apodwall/internal/model"
)

// Writer defines the interface for run output.
// Implementations render run results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or both with
// the same API.
type Writer interface {
	// WriteRun outputs a single run's result.
	// Returns the number of bytes written and any error encountered.
	WriteRun(report *model.RunReport) (int, error)

	// WriteHistory outputs past runs, most recent first.
	WriteHistory(records []journal.Record) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write run reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteRun outputs the run to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteRun(report *model.RunReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRun(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteHistory outputs the run history to all configured Writers.
func (m *MultiWriter) WriteHistory(records []journal.Record) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteHistory(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
