package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders header and footer segments on one background color.
// Styling each word separately and joining them with pre-styled spaces keeps
// the bar solid; a plain Render leaves unstyled gaps after ANSI resets.
type BgStyle struct {
	base  lipgloss.Style
	space string
}

// NewBgStyle creates a BgStyle for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))
	return BgStyle{base: base, space: base.Render(" ")}
}

// Render applies style on the bar background, word by word.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Inherit(b.base)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns one background-colored space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n background-colored spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.base.Render(strings.Repeat(" ", n))
}

// Join joins rendered parts with a background-colored separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.base.Render(sep))
}

// FillLine pads content to width so the bar spans the terminal.
func (b BgStyle) FillLine(content string, width int) string {
	return b.base.Width(width).Render(content)
}
