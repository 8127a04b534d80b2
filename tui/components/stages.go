package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/flipbook-cli/tui/styles"
)

// StageStatus is the display state of one pipeline step.
type StageStatus int

const (
	StagePending StageStatus = iota
	StageActive
	StageDone
	StageFailed
)

// StageItem is one line of the stage checklist.
type StageItem struct {
	Label  string
	Detail string
	Status StageStatus
}

// StageList renders the pipeline steps as a checklist, one per line.
func StageList(items []StageItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		var icon string
		var style lipgloss.Style
		switch it.Status {
		case StageActive:
			icon, style = "▸", lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		case StageDone:
			icon, style = "✓", lipgloss.NewStyle().Foreground(styles.Green)
		case StageFailed:
			icon, style = "✗", lipgloss.NewStyle().Foreground(styles.Red).Bold(true)
		default:
			icon, style = "·", lipgloss.NewStyle().Foreground(styles.Purple)
		}

		line := style.Render(icon + " " + it.Label)
		if it.Detail != "" {
			line += styles.SecondaryText.Render("  " + it.Detail)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
