// Package loggertest builds loggers for tests.
package loggertest

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/alnah/go-dokufy/internal/logger"
)

// New creates a Logger that writes through t.Log.
func New(t testing.TB) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}
