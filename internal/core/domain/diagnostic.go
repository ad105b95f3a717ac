package domain

import (
	"fmt"
	"strings"
)

// Diagnostic is a single message reported by the type checker.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Code     string
	Category string
	Message  string
}

// String formats the diagnostic as "file (line,col): message".
func (d Diagnostic) String() string {
	if d.File == "" {
		return d.Message
	}
	return fmt.Sprintf("%s (%d,%d): %s", d.File, d.Line, d.Column, d.Message)
}

// FormatDiagnostics joins diagnostics one per line.
func FormatDiagnostics(diags []Diagnostic) string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
