// Package logs builds the CLI's slog logger: a fan-out over a terminal
// handler, an optional JSON file and an optional systemd journal.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options configures New.
type Options struct {
	Level slog.Leveler
	// Format is "text" or "json" for the terminal handler.
	Format string
	// Terminal receives terminal output. Nil disables the terminal
	// handler, as in TUI mode where stderr belongs to the screen.
	Terminal io.Writer
	// File, if set, receives JSON records. The file is appended to.
	File string
	// Journal enables the systemd journal handler.
	Journal bool
}

// Logger is a logger plus the resources it holds open.
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

// New builds a logger from opts. With no sink configured the logger
// discards everything.
func New(opts Options) (*Logger, error) {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var (
		handlers []slog.Handler
		closers  []io.Closer
	)

	if opts.Terminal != nil {
		switch strings.ToLower(opts.Format) {
		case "", "text":
			handlers = append(handlers, slog.NewTextHandler(opts.Terminal, handlerOpts))
		case "json":
			handlers = append(handlers, slog.NewJSONHandler(opts.Terminal, handlerOpts))
		default:
			return nil, fmt.Errorf("unknown log format %q", opts.Format)
		}
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closers = append(closers, f)
	}

	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: toJournalKey,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			// The journal is best effort; report through whatever else is
			// configured.
			if len(handlers) > 0 {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = slogmulti.Fanout(handlers...).Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, &leveled{Handler: journal, level: level})
		}
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(io.Discard, handlerOpts))
	}

	return &Logger{
		Logger:  slog.New(slogmulti.Fanout(handlers...)),
		closers: closers,
	}, nil
}

// leveled gates a handler that has no level option of its own.
type leveled struct {
	slog.Handler
	level slog.Leveler
}

func (h *leveled) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.Handler.Enabled(ctx, l)
}

func (h *leveled) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveled{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

func (h *leveled) WithGroup(name string) slog.Handler {
	return &leveled{Handler: h.Handler.WithGroup(name), level: h.level}
}

// toJournalKey maps an attribute key to a valid journal field name.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
