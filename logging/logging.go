// Package logging builds the zap loggers shared by the labs and the CLI.
package logging

import (
	"io"

	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger flavour and level.
type Config struct {
	Level       string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error fatal"`
	Development bool   `mapstructure:"development"`
}

// NewZapLogger returns a coloured console logger in development and the zap
// production logger otherwise. A non-nil w replaces the config's stderr sink,
// for both log entries and zap's own errors.
func NewZapLogger(cfg Config, w io.Writer) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level, zapcore.DebugLevel))
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level, zapcore.InfoLevel))
	}
	if w == nil {
		return zapConfig.Build()
	}

	enc := zapcore.NewJSONEncoder(zapConfig.EncoderConfig)
	if zapConfig.Encoding == "console" {
		enc = zapcore.NewConsoleEncoder(zapConfig.EncoderConfig)
	}
	sink := zapcore.Lock(zapcore.AddSync(w))
	return zap.New(zapcore.NewCore(enc, sink, zapConfig.Level), zap.ErrorOutput(sink), zap.AddCaller()), nil
}

func parseLevel(level string, def zapcore.Level) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return def
	}
}

// NewEventLogger routes fx lifecycle events through log.
func NewEventLogger(log *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log}
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
