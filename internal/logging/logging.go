// Package logging opens the structured activity log. The terminal belongs
// to the TUI, so log records only ever go to a file.
package logging

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	logFileMode   = 0o600
	logDirMode    = 0o750
	maxLogEntries = 10000 // oldest entries are dropped beyond this
)

// Open returns a logger writing JSON lines to path and a function that
// closes the file. With an empty path the logger discards everything.
func Open(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	// Best-effort; a log that can't be trimmed is still appended to.
	_ = truncateLogIfNeeded(path, maxLogEntries)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from config or flag
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), f.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// truncateLogIfNeeded rewrites the log keeping only the last max lines.
func truncateLogIfNeeded(path string, maxEntries int) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}
	if len(lines) <= maxEntries {
		return nil
	}

	lines = lines[len(lines)-maxEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}
