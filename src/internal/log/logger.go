package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu          sync.RWMutex
	verbose     = false
	disableLogs = false
	logger      = newLogger(os.Stderr)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: false,
		PadLevelText:           true,
	})
	return l
}

// SetVerbose sets the logging verbosity. If true, all log levels are displayed.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// DisableLogs disables all logging.
func DisableLogs() {
	mu.Lock()
	defer mu.Unlock()
	disableLogs = true
	logger.SetOutput(io.Discard)
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return disableLogs
}

// SetOutput redirects all log output to w. Logging is re-enabled if it was disabled.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	disableLogs = false
	logger.SetOutput(w)
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

// WithField returns an entry carrying a structured field, e.g. the interface being classified.
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}
