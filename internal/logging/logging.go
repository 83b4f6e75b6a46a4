// Package logging builds the zap logger used for --debug output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing debug entries to stderr when debug is
// true, and a no-op logger otherwise.
func New(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Printf adapts a zap logger to the func(format, args...) debug hooks
// exposed by internal packages.
func Printf(logger *zap.Logger) func(format string, args ...any) {
	sugar := logger.Sugar()
	return func(format string, args ...any) {
		sugar.Debugf(format, args...)
	}
}
