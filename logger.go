package pgd

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called concurrently with computations running in other goroutines.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger used by this package. By default nothing
// is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - debug: pad amount, table sizes and the output buffer layout
//   - info: completed computations with their duration
//
// Example:
//
//	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
//	pgd.SetLogger(&l)
func SetLogger(l *zerolog.Logger) {
	if l == nil {
		n := zerolog.Nop()
		l = &n
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
