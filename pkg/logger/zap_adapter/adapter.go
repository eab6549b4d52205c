package zap_adapter

import (
	"fmt"

	"fulfillment/pkg/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapAdapter struct {
	logger *zap.Logger
}

type options struct {
	level   string
	service string
}

type Option func(*options)

// WithLevel уровень логирования (debug, info, warn, error). Пустая строка оставляет info.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithService добавляет поле service ко всем записям.
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// NewZapAdapter JSON логгер в stdout, ошибки самого zap в stderr.
func NewZapAdapter(opts ...Option) (*ZapAdapter, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Encoding = "json"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if o.level != "" {
		level, err := zapcore.ParseLevel(o.level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", o.level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, err
	}

	if o.service != "" {
		zapLogger = zapLogger.With(zap.String("service", o.service))
	}

	return &ZapAdapter{logger: zapLogger}, nil
}

// NewNop логгер без вывода, для тестов и утилит.
func NewNop() *ZapAdapter {
	return &ZapAdapter{logger: zap.NewNop()}
}

// NewFromZap оборачивает готовый *zap.Logger.
func NewFromZap(l *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: l}
}

func (z *ZapAdapter) Info(msg string, fields ...logger.Field) {
	z.logger.Info(msg, toZap(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...logger.Field) {
	z.logger.Warn(msg, toZap(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...logger.Field) {
	z.logger.Error(msg, toZap(fields)...)
}

func (z *ZapAdapter) With(fields ...logger.Field) logger.Logger {
	return &ZapAdapter{logger: z.logger.With(toZap(fields)...)}
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func toZap(fields []logger.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		case fmt.Stringer:
			out = append(out, zap.Stringer(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}
