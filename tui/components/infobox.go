// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/flipbook-cli/tui/styles"
)

// RenderInfoBox draws contentLines inside a rounded box whose top edge
// carries title as a tab header:
//
//	╭─ Title ──────╮
//	│content       │
//	╰──────────────╯
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}
	innerWidth := width - 2

	border := lipgloss.NewStyle().Foreground(styles.Purple)
	header := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).Render(" " + title + " ")

	fill := innerWidth - 1 - lipgloss.Width(header)
	if fill < 0 {
		fill = 0
	}

	lines := make([]string, 0, len(contentLines)+2)
	lines = append(lines, border.Render("╭─")+header+border.Render(strings.Repeat("─", fill)+"╮"))
	for _, line := range contentLines {
		pad := innerWidth - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, border.Render("│")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))

	return strings.Join(lines, "\n")
}
