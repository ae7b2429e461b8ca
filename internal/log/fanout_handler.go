package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FanoutHandler duplicates each log record to multiple underlying handlers.
// It is used to write every run to both the console and the append-only
// log file, each at its own level: the console follows the --verbose flag
// while the file always records debug detail for later diagnosis.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Each destination keeps its own level filtering
type FanoutHandler struct {
	// handlers are the destinations each record is delivered to.
	handlers []slog.Handler
}

// NewFanoutHandler creates a FanoutHandler wrapping the given handlers.
// Nil handlers are skipped.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	hs := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return &FanoutHandler{handlers: hs}
}

// Enabled reports whether any underlying handler handles records at the
// given level. Per-destination filtering happens in Handle.
func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every underlying handler that accepts its
// level. All handlers are attempted even if one fails; errors are joined.
func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a new handler with the given attributes added to every
// destination.
func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: handlers}
}

// WithGroup returns a new handler with the given group name on every
// destination.
func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: handlers}
}

// NewLogger builds the standard run logger: console output at Info (or
// Debug when verbose) and, when logFile is non-nil, a file destination
// that always records at Debug. Verbose console output is therefore a
// strict superset of non-verbose output.
func NewLogger(verbose bool, console io.Writer, logFile io.Writer) *slog.Logger {
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := slog.LevelInfo
	if verbose {
		consoleLevel = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: consoleLevel}),
	}
	if logFile != nil {
		handlers = append(handlers,
			slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return slog.New(NewFanoutHandler(handlers...))
}

// OpenLogFile opens the append-only log file, creating parent directories
// as needed. Growth is unbounded; the file is a plain audit trail for a
// once-a-day task and rotation is left to the operator.
func OpenLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // Log path comes from config
}
