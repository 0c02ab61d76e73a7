// ABOUTME: File-based debug logger shared by the CLI and TUI
// ABOUTME: Keeps non-fatal reports off the terminal so output stays clean

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type level string

const (
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
)

var (
	mu      sync.Mutex
	sink    *os.File
	enabled bool
)

// Init opens the log file under the given config directory. An empty
// directory disables logging; all log calls become no-ops.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	sink = f
	enabled = true
	return nil
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		sink.Close()
		sink = nil
	}
	enabled = false
}

func emit(lvl level, context, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || sink == nil {
		return
	}

	fmt.Fprintf(sink, "[%s] %-5s [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), lvl, context, msg)
}

// Info logs a routine event worth having in a trace.
func Info(context, format string, args ...interface{}) {
	emit(levelInfo, context, fmt.Sprintf(format, args...))
}

// Warn logs a recoverable problem.
func Warn(context, format string, args ...interface{}) {
	emit(levelWarn, context, fmt.Sprintf(format, args...))
}

// Error logs an error under a context label. Nil errors are ignored.
func Error(context string, err error) {
	if err == nil {
		return
	}
	emit(levelError, context, err.Error())
}
