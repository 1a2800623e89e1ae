// Package logging provides the structured logger used by the exam
// calendar's legacysync layer, grounded on the pack's
// go.uber.org/zap usage (noah-isme-sma-adp-api's pkg/logger).
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// L returns the process-wide sugared logger, building it on first use with
// zap.NewProduction (JSON output) and falling back to a no-op logger if
// that fails.
func L() *zap.SugaredLogger {
	once.Do(func() {
		base, err := zap.NewProduction()
		if err != nil {
			base = zap.NewNop()
		}
		logger = base.Sugar()
	})
	return logger
}

// Sync flushes buffered log entries, intended to run via defer from main.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
