package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// Faint returns text with faint styling.
func Faint(text string) string { return faintStyle.Render(text) }

// Bold returns text with bold styling.
func Bold(text string) string { return boldStyle.Render(text) }

// Success returns text with success (green) styling.
func Success(text string) string { return successStyle.Render(text) }

// Warning returns text with warning (yellow) styling.
func Warning(text string) string { return warningStyle.Render(text) }

// Header returns text styled as a section header (category separators).
func Header(text string) string { return headerStyle.Render(text) }

// Fprintln writes styled text followed by a newline.
func Fprintln(w io.Writer, styled string) {
	fmt.Fprintln(w, styled)
}
