package main

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger returns the logger stored in the context by the app setup.
func AppLogger(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

// LogMetadata logs the version metadata once on command start.
func LogMetadata(c *cli.Context) error {
	log := AppLogger(c.Context)
	log.WithValues("version", version, "date", date).Info("Starting up " + appName)
	return nil
}

func newLogger(name string, verbosity int) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// logr verbosity maps to negative zap levels.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("error configuring logger: %w", err)
	}
	return zapr.NewLogger(z).WithName(name), nil
}
