package common

import (
	"log/slog"
	"sync/atomic"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.Default())
}

// SetLogger configures the logger shared by every package in this module.
// Pass nil to restore slog.Default().
//
// Log levels used:
//   - [slog.LevelDebug]: skipped bindings, absent optional capabilities, poll attempts
//   - [slog.LevelInfo]: lifecycle transitions (runtime initialized, controls bound, surface resized)
//   - [slog.LevelError]: widget callback failures
//
// Parameters:
//   - l: the logger to install
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
//
// Returns:
//   - *slog.Logger: the active logger, never nil
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ComponentLogger returns the current logger tagged with a component attribute.
//
// Parameters:
//   - component: the component name, e.g. "resize"
//
// Returns:
//   - *slog.Logger: the tagged logger
func ComponentLogger(component string) *slog.Logger {
	return Logger().With("component", component)
}
