package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// ErrEmptyLogDirectory is returned when a log file is requested without a directory.
var ErrEmptyLogDirectory = errors.New("log directory cannot be empty")

// File permissions for the run log
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// LogFileName returns the per-run JSON log file name.
func LogFileName(runID string, now time.Time) string {
	return fmt.Sprintf("utf8conv_%s_%s.json", now.UTC().Format("20060102T150405Z"), runID)
}

// openLogFile creates a new log file in dir. The file must not exist yet and
// is never opened through a symlink.
func openLogFile(dir, runID string, now time.Time) (*os.File, error) {
	if dir == "" {
		return nil, ErrEmptyLogDirectory
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, LogFileName(runID, now))
	// #nosec G304 - the name is generated here and O_NOFOLLOW|O_EXCL refuse existing entries
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|syscall.O_NOFOLLOW, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
