package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/flipbook-cli/tui/styles"
)

// RunProgressState holds the state for the page-writing progress display.
type RunProgressState struct {
	Active      bool
	Total       int
	Completed   int
	Failed      bool
	CurrentFile string
}

// RunProgress renders a bordered info box showing page-writing progress.
// It displays a progress bar, percentage, page counter and the last file written.
func RunProgress(state RunProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	// Box border = 2, plus 1 space padding each side
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var pct int
	if state.Total > 0 {
		pct = state.Completed * 100 / state.Total
	}

	// Leave room for the " XXX%" label
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := 0
	if state.Total > 0 {
		filled = barWidth * state.Completed / state.Total
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))
	lines := []string{
		" " + bar + textStyle.Render(fmt.Sprintf(" %3d%%", pct)),
		textStyle.Render(fmt.Sprintf(" %d/%d pages", state.Completed, state.Total)),
	}

	switch {
	case state.Failed:
		lines = append(lines, " "+redStyle.Render("Stopped on error"))
	case state.Completed == state.Total && state.Total > 0:
		lines = append(lines, " "+greenStyle.Render("All pages written"))
	case state.CurrentFile != "":
		file := state.CurrentFile
		if maxW := innerW - 2; lipgloss.Width(file) > maxW {
			file = ansi.Truncate(file, maxW-3, "...")
		}
		lines = append(lines, " "+textStyle.Render(file))
	}

	return RenderInfoBox("Pages", lines, width)
}
