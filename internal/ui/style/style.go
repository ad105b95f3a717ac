// Package style holds the palette and glyphs strata prints log lines and progress with.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/strata/internal/core/domain"
)

// Palette.
var (
	Muted   = lipgloss.Color("#667085")
	Failure = lipgloss.Color("#D93025")
	Caution = lipgloss.Color("#F59E0B")
	Debug   = lipgloss.Color("#98A2B3")
)

// Glyphs.
const (
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "·"
)

// Mark is the glyph and color a log line of some level is printed with.
type Mark struct {
	Glyph string
	Color lipgloss.Color
}

// ForLevel returns the mark of a log level. Info lines carry no glyph.
func ForLevel(level domain.LogLevel) Mark {
	switch {
	case level >= domain.LogLevelError:
		return Mark{Glyph: Cross, Color: Failure}
	case level >= domain.LogLevelWarn:
		return Mark{Glyph: Warning, Color: Caution}
	case level >= domain.LogLevelInfo:
		return Mark{Color: Muted}
	default:
		return Mark{Glyph: Dot, Color: Debug}
	}
}

// Prefix prepends the mark's glyph to msg.
func (m Mark) Prefix(msg string) string {
	if m.Glyph == "" {
		return msg
	}
	return m.Glyph + " " + msg
}
