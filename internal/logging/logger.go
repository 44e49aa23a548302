// Package logging sets up structured logging for codex-launch.
//
// Log output goes to a rotated debug.log in the launcher's config directory
// and, in parallel, to an in-memory ring buffer that can be dumped to a
// crash file when the picker panics. The picker owns the terminal while it
// runs, so nothing is ever logged to stderr.
package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component constants for structured logging.
const (
	CompScan   = "scan"
	CompIndex  = "index"
	CompPicker = "picker"
	CompConfig = "config"
	CompLaunch = "launch"
)

// Config holds logging configuration.
type Config struct {
	// LogDir is the directory for log files (e.g. ~/.codex-launch).
	// Empty disables file logging entirely.
	LogDir string

	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string

	// Format is "json" (default) or "text".
	Format string

	// MaxSizeMB is the max size in MB before rotation (default: 5).
	MaxSizeMB int

	// MaxBackups is rotated files to keep (default: 3).
	MaxBackups int

	// RingSize is the crash ring buffer size in bytes (default: 256KB).
	RingSize int
}

var (
	globalMu     sync.RWMutex
	globalLogger *slog.Logger
	globalRing   *Ring
	fileW        *lumberjack.Logger
)

// Init initializes the global logging system. Safe to call once at startup;
// until then all loggers discard.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 256 * 1024
	}

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	globalRing = NewRing(cfg.RingSize)

	var w io.Writer = globalRing
	if cfg.LogDir != "" {
		fileW = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "debug.log"),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		}
		w = io.MultiWriter(fileW, globalRing)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	globalLogger = slog.New(handler)
}

// Logger returns the global logger. Safe to call before Init (discards).
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return globalLogger
}

// ForComponent returns a sub-logger tagged with the component field. The
// returned logger resolves the global handler at log time, so package-level
// loggers created before Init still write to the real handler afterwards.
func ForComponent(name string) *slog.Logger {
	return slog.New(&lateHandler{component: name})
}

// lateHandler delegates to the current global handler on every call.
type lateHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h *lateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *lateHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := Logger().Handler()
	handler = handler.WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	if h.group != "" {
		handler = handler.WithGroup(h.group)
	}
	return handler.Handle(ctx, r)
}

func (h *lateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &lateHandler{component: h.component, attrs: merged, group: h.group}
}

func (h *lateHandler) WithGroup(name string) slog.Handler {
	return &lateHandler{component: h.component, attrs: h.attrs, group: name}
}

// DumpRing writes the crash ring buffer to path. No-op before Init.
func DumpRing(path string) error {
	globalMu.RLock()
	ring := globalRing
	globalMu.RUnlock()
	if ring == nil {
		return nil
	}
	return ring.DumpToFile(path)
}

// Shutdown closes the log file writer.
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if fileW != nil {
		fileW.Close()
		fileW = nil
	}
	globalLogger = nil
	globalRing = nil
}
