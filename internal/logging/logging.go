package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Graylog2/go-gelf/gelf"

	"github.com/sciencekit/sciencekit/internal/util"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
// The program name is sanitized so the file always lands in logsDir.
func LogFilePath(logsDir, program string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", util.SanitizeFileName(program), sessionStart.Format("20060102_150405")),
	)
}

// OpenLogFile creates logsDir if needed and opens the program's log file for
// appending.
func OpenLogFile(logsDir, program string, sessionStart time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs dir: %w", err)
	}
	path := LogFilePath(logsDir, program, sessionStart)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// NewGraylogWriter returns a GELF UDP writer for address.
func NewGraylogWriter(address, facility string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("creating graylog writer: %w", err)
	}
	w.Facility = facility
	return w, nil
}
