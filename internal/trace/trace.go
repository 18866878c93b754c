// Package trace provides optional structured logging for hosts that want
// visibility into allocator calls without paying for it by default. Heap
// logs each Alloc and Dealloc (size, alignment, resulting pointer, and
// failed or zero-size requests); which record was chosen and when a split
// or a coalesce happened are not logged.
package trace

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Default is the logger used when a Heap has no logger of its own: it
// discards everything, so tracing costs nothing unless explicitly enabled.
func Default() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	logPrefix = "bareheap-"
	logSuffix = ".log"
)

// Options configures file-backed logging via Init.
type Options struct {
	Enabled bool       // If false, Init returns the discarding Default logger.
	LogDir  string     // Directory for log files. Default: ./bareheap-logs
	Level   slog.Level // Minimum level. Default: LevelDebug when enabled.
}

// Init builds a *slog.Logger per opts, creating LogDir if necessary. It is
// meant for hosts (such as cmd/bareheapctl) that want a persistent trace of
// allocator activity across a run.
func Init(opts Options) (*slog.Logger, error) {
	if !opts.Enabled {
		return Default(), nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = "bareheap-logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelDebug
	}

	name := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02-150405")+logSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), nil
}
