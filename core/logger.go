package core

import (
	"go.uber.org/zap"

	"github.com/wippyai/cvbridge/internal/handle"
)

// Logger returns the logger used for wrapper lifecycle events, shared by
// every wrapper package. It is a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	return handle.Logger()
}

// SetLogger replaces the wrapper logger. Safe for concurrent use.
func SetLogger(l *zap.Logger) {
	handle.SetLogger(l)
}
