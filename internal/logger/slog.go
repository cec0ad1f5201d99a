package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// slogLogger implements Logger on top of log/slog.
type slogLogger struct {
	logger *slog.Logger
	level  Level
}

// NewSlogLogger creates a Logger backed by slog. Entries carry the service
// and env attributes when set, and levels are written as lowercase names
// matching the log.level configuration values.
func NewSlogLogger(cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:       toSlogLevel(cfg.Level),
		AddSource:   cfg.AddSource,
		ReplaceAttr: replaceLevel,
	}

	var out io.Writer = os.Stdout
	if cfg.Output != nil {
		out = cfg.Output
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	var base []slog.Attr
	if cfg.Service != "" {
		base = append(base, slog.String("service", cfg.Service))
	}
	if cfg.Env != "" {
		base = append(base, slog.String("env", cfg.Env))
	}
	if len(base) > 0 {
		handler = handler.WithAttrs(base)
	}

	return &slogLogger{
		logger: slog.New(handler),
		level:  cfg.Level,
	}
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fromSlogLevel(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}

// replaceLevel writes "debug" instead of slog's "DEBUG".
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(fromSlogLevel(l).String())
		}
	}
	return a
}

func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}

func (l *slogLogger) log(level Level, msg string, fields []Field) {
	ctx := context.Background()
	lvl := toSlogLevel(level)
	if !l.logger.Enabled(ctx, lvl) {
		return
	}
	l.logger.LogAttrs(ctx, lvl, msg, toAttrs(fields)...)
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *slogLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &slogLogger{
		logger: slog.New(l.logger.Handler().WithAttrs(toAttrs(fields))),
		level:  l.level,
	}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return l.With(extractContextFields(ctx)...)
}

func (l *slogLogger) Level() Level {
	return l.level
}
