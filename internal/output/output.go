// Package output renders CLI results as a styled table, JSON or plain
// todo.txt lines.
package output

import (
	"os"
	"strings"
)

// Format is one of the CLI output styles.
type Format int

const (
	// FormatTable groups tasks under styled priority headings.
	FormatTable Format = iota
	// FormatJSON is machine-readable output.
	FormatJSON
	// FormatCompact prints plain todo.txt lines.
	FormatCompact
)

// EnvVar selects the output format when no flag does.
const EnvVar = "TODOCURSES_OUTPUT"

var envFormats = map[string]Format{
	"json":    FormatJSON,
	"compact": FormatCompact,
	"oneline": FormatCompact,
	"table":   FormatTable,
}

// Detect picks the format from the --json and --compact flags, falling
// back to $TODOCURSES_OUTPUT and then the table.
func Detect(jsonFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	}
	if f, ok := envFormats[strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar)))]; ok {
		return f
	}
	return FormatTable
}
