// Package logging routes the standard logger. A terminal UI owns stdout, so
// debug output goes to a file and is otherwise discarded.
package logging

import (
	"io"
	"log"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

const prefix = "daytally"

var enabled atomic.Bool

// Setup enables file logging at path when debug is set and discards log
// output otherwise. The returned func closes the log file.
func Setup(debug bool, path string) (func() error, error) {
	enabled.Store(debug)
	if !debug {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		enabled.Store(false)
		return nil, err
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f.Close, nil
}

// Enabled reports whether Setup turned debug logging on.
func Enabled() bool {
	return enabled.Load()
}

// Debugf logs only when debug logging is enabled.
func Debugf(format string, args ...any) {
	if Enabled() {
		log.Printf(format, args...)
	}
}
