package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpBindings = [][2]string{
	{"W A S D / arrows", "pan"},
	{"mouse", "hover a star for info"},
	{"0", "return to start"},
	{"t", "cycle theme"},
	{"e", "toggle discovery log"},
	{"?", "toggle this help"},
	{"esc", "close overlays"},
	{"q / ctrl+c", "quit"},
}

// renderHelp renders the key binding overlay centered in width x height.
func renderHelp(theme Theme, width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(keyStyle.Render("Controls"))
	b.WriteString("\n\n")
	for i, kb := range helpBindings {
		b.WriteString(keyStyle.Render(padRight(kb[0], 18)))
		b.WriteString(descStyle.Render(kb[1]))
		if i < len(helpBindings)-1 {
			b.WriteString("\n")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Dim).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
