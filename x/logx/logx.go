// Package logx builds the zap loggers used by hosted binaries. Firmware
// logs with println instead.
package logx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is a console encoder on stderr: stdout carries the command
// protocol and must stay clean.
func Config() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// New returns a named sugared logger.
func New(name string) *zap.SugaredLogger {
	return zap.Must(Config().Build()).Sugar().Named(name)
}
