// Package logging writes diagnostic logs to a file so the TUI keeps stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	logger  = log.NewWithOptions(io.Discard, log.Options{})
	logFile *os.File
)

// Dir returns the default log directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".backoffice", "logs")
}

// Init opens a dated log file under dir at the given level
// ("debug", "info", "warn", "error"). Calling Init again replaces the sink.
func Init(dir, level string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	name := fmt.Sprintf("backoffice-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	})
	return nil
}

// SetOutput points the logger at w. Used by tests and the mock server.
func SetOutput(w io.Writer, level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	mu.Lock()
	logger = log.NewWithOptions(w, log.Options{ReportTimestamp: true, Level: lvl})
	mu.Unlock()
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = log.NewWithOptions(io.Discard, log.Options{})
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) { current().Debug(msg, keyvals...) }

// Info logs an info message.
func Info(msg string, keyvals ...any) { current().Info(msg, keyvals...) }

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) { current().Warn(msg, keyvals...) }

// Error logs an error message.
func Error(msg string, keyvals ...any) { current().Error(msg, keyvals...) }
