// Package logger builds the zap logger shared by the CLI and the dev server.
// Human-facing command output stays on stdout; the logger writes diagnostics
// to stderr so piping transcript text remains clean.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a stderr console logger. verbose lowers the level to Debug,
// which is where poll-by-poll and request-by-request diagnostics live.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return config.Build()
}

// MustNew creates a logger and panics if it fails.
func MustNew(verbose bool) *zap.Logger {
	logger, err := New(verbose)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

// NewServer returns the structured production logger used by the dev server.
func NewServer() (*zap.Logger, error) {
	return zap.NewProductionConfig().Build()
}
