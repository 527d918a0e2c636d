package log

import (
	"context"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
}

type logger struct {
	log *otelzap.Logger
}

var (
	global *logger
	once   sync.Once
)

// SetupLogger builds the base zap logger used by the whole service.
func SetupLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Setup returns an otelzap logger for handlers, which log through Ctx(ctx).
func Setup() *otelzap.Logger {
	return otelzap.New(SetupLogger(), otelzap.WithMinLevel(zapcore.InfoLevel))
}

func Init(l *zap.Logger) {
	once.Do(func() {
		global = &logger{log: otelzap.New(l)}
	})
}

func GetLogger() Logger {
	if global == nil {
		Init(SetupLogger())
	}
	return global
}

func (l *logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log.Ctx(ctx).Info(msg, toFields(fields)...)
}

func (l *logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log.Ctx(ctx).Warn(msg, toFields(fields)...)
}

func (l *logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log.Ctx(ctx).Error(msg, toFields(fields)...)
}

func toFields(fields []interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.(type) {
		case zap.Field:
			out = append(out, v)
		case error:
			out = append(out, zap.Error(v))
		default:
			out = append(out, zap.Any("detail", v))
		}
	}
	return out
}
