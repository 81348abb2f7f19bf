package engine

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the engine logger. It is a no-op logger unless SetLogger
// was called.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the engine logger. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// debugf logs handle and allocation traffic when the logger has debug
// enabled.
func debugf(format string, args ...any) {
	l := Logger()
	if l.Core().Enabled(zapcore.DebugLevel) {
		l.Sugar().Debugf(format, args...)
	}
}
