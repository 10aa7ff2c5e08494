// Package logging provides the logger interface used across ddl-archiver
// and its zap-backed implementation.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger injected into every component.
// Args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// ZapLogger adapts a zap.SugaredLogger to Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// Wrap adapts an existing zap logger.
func Wrap(l *zap.Logger) ZapLogger {
	return ZapLogger{s: l.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() ZapLogger {
	return Wrap(zap.NewNop())
}

// New builds a zap logger from a level ("debug", "info", ...) and a format
// ("json" or "console").
func New(level, format string) (ZapLogger, *zap.Logger, error) {
	var lvl zapcore.Level
	if level == "" {
		level = "info"
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return ZapLogger{}, nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "", "console", "text":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.DisableStacktrace = true
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return ZapLogger{}, nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return ZapLogger{}, nil, fmt.Errorf("building logger: %w", err)
	}
	return Wrap(l), l, nil
}

func (z ZapLogger) Debug(msg string, args ...any) { z.s.Debugw(msg, args...) }
func (z ZapLogger) Info(msg string, args ...any)  { z.s.Infow(msg, args...) }
func (z ZapLogger) Warn(msg string, args ...any)  { z.s.Warnw(msg, args...) }
func (z ZapLogger) Error(msg string, args ...any) { z.s.Errorw(msg, args...) }

func (z ZapLogger) With(args ...any) Logger {
	return ZapLogger{s: z.s.With(args...)}
}
