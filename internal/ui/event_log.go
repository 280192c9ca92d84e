package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/state"
)

// eventLogLines is how many events the discovery log shows.
const eventLogLines = 5

// RenderEventLog renders the most recent session events, newest last.
// Format:
//
//	12:04:31  DISCOVERED  x: 32, y: 0     name 2097152
//	12:04:40  RETURNED    x: 0, y: 0      origin
func RenderEventLog(events []state.Event, theme Theme, width int) string {
	dimStyle := lipgloss.NewStyle().Foreground(theme.Dim)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	if len(events) == 0 {
		return dimStyle.Render("No discoveries yet - hover a star")
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		coords := fmt.Sprintf("x: %d, y: %d", e.X, e.Y)
		detail := e.Detail
		if e.Type == state.EventDiscovered {
			detail = fmt.Sprintf("name %d", e.Name)
		}
		line := dimStyle.Render(e.Timestamp.Format("15:04:05")) + "  " +
			labelStyle.Render(fmt.Sprintf("%-10s", e.Type)) + "  " +
			fmt.Sprintf("%-22s", coords) + " " + detail
		if width > 0 {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
