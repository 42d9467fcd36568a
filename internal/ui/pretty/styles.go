// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the Lipgloss styles used for terminal output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Code       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableTotal     lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// palette names the ANSI colors the styles draw from. The zero palette
// yields unstyled output.
type palette struct {
	color                                bool
	red, yellow, blue, green, gray, text lipgloss.Color
}

var ansiPalette = palette{
	color:  true,
	red:    "9",
	yellow: "11",
	blue:   "12",
	green:  "10",
	gray:   "8",
	text:   "7",
}

// NewStyles creates styles for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if colorEnabled {
		return ansiPalette.styles()
	}
	return palette{}.styles()
}

func (p palette) fg(c lipgloss.Color) lipgloss.Style {
	if !p.color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

func (p palette) bold(c lipgloss.Color) lipgloss.Style {
	return p.fg(c).Bold(p.color)
}

func (p palette) styles() *Styles {
	plain := lipgloss.NewStyle()
	strong := plain.Bold(p.color)

	return &Styles{
		Error:   p.bold(p.red),
		Warning: p.bold(p.yellow),
		Info:    p.bold(p.blue),

		FilePath:   strong,
		Location:   p.fg(p.gray),
		Code:       p.fg(p.gray),
		Message:    plain,
		SourceLine: p.fg(p.text),
		Caret:      p.fg(p.red),

		SummaryTitle: strong,
		SummaryValue: plain,
		Success:      p.bold(p.green),
		Failure:      p.bold(p.red),

		TableHeader:    p.bold(p.text),
		TableTotal:     strong,
		TableSeparator: p.fg(p.gray),

		Dim:  p.fg(p.gray),
		Bold: strong,
	}
}

// IsColorEnabled reports whether output written to w should be colored.
// Mode is "always", "never" or "auto"; anything else means auto, which
// requires a terminal and an empty NO_COLOR (https://no-color.org/).
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
