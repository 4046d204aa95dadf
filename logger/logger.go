// Package logger provides a structured logging interface for applications.
//
// It wraps the zap logging library to provide a simpler API while maintaining
// high performance. Loggers carry key-value pairs, named scopes and metadata
// extracted from a context (see the meta package).
package logger

import (
	"context"
	"errors"
	"os"

	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rise-and-shine/invoker/meta"
)

// Logger defines the standard logging interface used across applications.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg any)
	// Info logs a message at info level.
	Info(msg any)
	// Warn logs a message at warn level.
	Warn(msg any)
	// Error logs a message at error level.
	Error(msg any)
	// Fatal logs a message at fatal level and then calls os.Exit(1).
	Fatal(msg any)

	// Debugf logs a formatted message at debug level.
	Debugf(format string, args ...any)
	// Infof logs a formatted message at info level.
	Infof(format string, args ...any)
	// Warnf logs a formatted message at warn level.
	Warnf(format string, args ...any)
	// Errorf logs a formatted message at error level.
	Errorf(format string, args ...any)

	// Warnx logs an error at warn level, expanding errx.ErrorX attributes into fields.
	Warnx(err error)
	// Errorx logs an error at error level, expanding errx.ErrorX attributes into fields.
	Errorx(err error)

	// With creates a new logger with the given key-value pairs.
	With(keysAndValues ...any) Logger
	// WithContext creates a logger enriched with the metadata found in ctx.
	WithContext(ctx context.Context) Logger
	// Named adds a sub-scope to the logger's name.
	Named(name string) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

// logger implements the Logger interface using zap's SugaredLogger.
type logger struct {
	*zap.SugaredLogger
}

// New creates a new Logger instance with the provided configuration.
func New(cfg Config) (Logger, error) {
	if cfg.Disable {
		return NewNop(), nil
	}

	zapConfig, err := cfg.getZapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if cfg.Encoding == EncodingPretty {
		core := zapcore.NewCore(newPrettyEncoder(zapConfig.EncoderConfig), zapcore.AddSync(os.Stdout), zapConfig.Level)
		return FromZap(zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))), nil
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return FromZap(zapLogger), nil
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return FromZap(zap.NewNop())
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) Logger {
	return &logger{SugaredLogger: l.Sugar()}
}

func (l *logger) Warnx(err error) {
	l.withErrorFields(err).Warn(err.Error())
}

func (l *logger) Errorx(err error) {
	l.withErrorFields(err).Error(err.Error())
}

func (l *logger) withErrorFields(err error) Logger {
	var e errx.ErrorX
	if errors.As(err, &e) {
		return l.With(
			"error_code", e.Code(),
			"error_type", e.Type().String(),
			"error_trace", e.Trace(),
			"error_fields", e.Fields(),
			"error_details", e.Details(),
		)
	}
	return l
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{
		SugaredLogger: l.SugaredLogger.With(keysAndValues...),
	}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	var withFields []any
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		// Convert ContextKey to string to avoid the "non-string keys" error
		withFields = append(withFields, string(k), v)
	}

	if len(withFields) > 0 {
		return l.With(withFields...)
	}

	return l
}

func (l *logger) Named(name string) Logger {
	return &logger{
		SugaredLogger: l.SugaredLogger.Named(name),
	}
}

func (l *logger) Debug(msg any) {
	l.SugaredLogger.Debug(msg)
}

func (l *logger) Info(msg any) {
	l.SugaredLogger.Info(msg)
}

func (l *logger) Warn(msg any) {
	l.SugaredLogger.Warn(msg)
}

func (l *logger) Error(msg any) {
	l.SugaredLogger.Error(msg)
}

func (l *logger) Fatal(msg any) {
	l.SugaredLogger.Fatal(msg)
}
