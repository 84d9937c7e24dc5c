// Package logging provides structured logging built on zap.
package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ramsey-B/bramble/internal/appctx"
	"github.com/Ramsey-B/bramble/internal/tracing"
)

// Logger is the logging interface used throughout the service
type Logger interface {
	WithContext(ctx context.Context) Logger
	WithFields(fields map[string]any) Logger
	WithField(key string, value any) Logger
	WithError(err error) Logger
	Debug(msg string)
	Debugf(format string, args ...any)
	Info(msg string)
	Infof(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
}

// Config holds logger configuration
type Config struct {
	Level  string
	Pretty bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a zap backed Logger
func NewLogger(cfg Config) (Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Pretty {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &zapLogger{sugar: logger.Sugar()}, nil
}

// NewNopLogger creates a Logger that discards everything. Used in tests.
func NewNopLogger() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) WithContext(ctx context.Context) Logger {
	fields := []any{}
	if requestID := appctx.GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if tenantID := appctx.GetTenantID(ctx); tenantID != "" {
		fields = append(fields, "tenant_id", tenantID)
	}
	if traceID := tracing.GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}
	if spanID := tracing.GetSpanID(ctx); spanID != "" {
		fields = append(fields, "span_id", spanID)
	}
	if len(fields) == 0 {
		return l
	}
	return &zapLogger{sugar: l.sugar.With(fields...)}
}

func (l *zapLogger) WithFields(fields map[string]any) Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &zapLogger{sugar: l.sugar.With(args...)}
}

func (l *zapLogger) WithField(key string, value any) Logger {
	return &zapLogger{sugar: l.sugar.With(key, value)}
}

func (l *zapLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return &zapLogger{sugar: l.sugar.With("error", err.Error())}
}

func (l *zapLogger) Debug(msg string)                  { l.sugar.Debug(msg) }
func (l *zapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Info(msg string)                   { l.sugar.Info(msg) }
func (l *zapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warn(msg string)                   { l.sugar.Warn(msg) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Error(msg string)                  { l.sugar.Error(msg) }
func (l *zapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
