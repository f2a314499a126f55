package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"wefixit/pkg/config"
	"wefixit/pkg/trace"
)

var Log *zap.Logger

// NewLogger builds the process logger. Production mode writes JSON, anything
// else uses the development console encoder. With FileEnable set, output is
// also written to a rotating file.
func NewLogger(cfg config.LoggerConfig) *zap.Logger {
	var zapConfig zap.Config
	if cfg.Mode == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	var l *zap.Logger
	if cfg.FileEnable && cfg.Filename != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(rotator),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		l = zap.New(core, zap.AddCaller())
	} else {
		var err error
		l, err = zapConfig.Build()
		if err != nil {
			panic(err)
		}
	}

	Log = l
	return l
}

// WithTrace adds the request trace_id from ctx, if any.
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceID := trace.FromContext(ctx)
	if traceID != "" {
		return logger.With(zap.String("trace_id", traceID))
	}
	return logger
}
