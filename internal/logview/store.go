// Package logview supplies desktop log text and turns it into rendered HTML
// for the log tab of the desktop webview.
package logview

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Log levels recorded in the desktop log file.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
	LevelTrace = "TRACE"
)

// Store appends to and clears the desktop log file. Lines have the form
// [<timestamp>][LEVEL] message, matching what the desktop app writes.
type Store struct {
	path string
}

// NewStore creates a store for the given log file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the log file path.
func (s *Store) Path() string {
	return s.path
}

// Append writes one timestamped log line, creating parent directories as
// needed.
func (s *Store) Append(level, message string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	ts := time.Now().Format("2006-01-02T15:04:05-07:00")
	if _, err := fmt.Fprintf(f, "[%s][%s] %s\n", ts, level, message); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	return nil
}

// Clear removes the log file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete log file: %w", err)
	}
	return nil
}
