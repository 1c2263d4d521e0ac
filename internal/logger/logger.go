// Package logger configures the process-wide slog default used by every
// component of the tool.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Config controls the default handler.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	Output io.Writer
}

// DefaultConfig logs text at info level to stderr.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Format: "text", Output: os.Stderr}
}

// Init installs the default logger. Verbose mode drops the level to debug.
func Init(cfg Config, verbose bool) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := cfg.Level
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ForComponent returns a logger tagged with the component name. The logger
// follows the process default, so a later Init applies to component loggers
// created at package init time.
func ForComponent(component string) *slog.Logger {
	return slog.New(defaultHandler{}).With("component", component)
}

// defaultHandler delegates to the current default handler on every call.
type defaultHandler struct {
	attrs  []slog.Attr
	groups []string
}

func (h defaultHandler) resolve() slog.Handler {
	target := slog.Default().Handler()
	if len(h.attrs) > 0 {
		target = target.WithAttrs(h.attrs)
	}
	for _, g := range h.groups {
		target = target.WithGroup(g)
	}
	return target
}

func (h defaultHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, level)
}

func (h defaultHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

func (h defaultHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return h
}

func (h defaultHandler) WithGroup(name string) slog.Handler {
	h.groups = append(append([]string(nil), h.groups...), name)
	return h
}
