// Package logging builds the zap loggers used by the CLI, the server and the
// terminal UI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to stderr.
func New(verbose bool) (*zap.Logger, error) {
	return build(verbose, []string{"stderr"})
}

// NewFile returns a logger that appends to path. The terminal UI owns
// stdout and stderr, so it logs to a file instead.
func NewFile(path string, verbose bool) (*zap.Logger, error) {
	return build(verbose, []string{path})
}

func build(verbose bool, outputs []string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
