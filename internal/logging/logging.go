// Package logging wraps zap.Logger construction for the toolkit's CLI and
// orchestrator, grounded on codenerd's main.go logger setup (a
// zap.NewProductionConfig(), raised to debug level under verbose mode).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger for a CLI run: JSON-encoded production config,
// debug level when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want orchestrator diagnostics on stderr.
func Nop() *zap.Logger {
	return zap.NewNop()
}
