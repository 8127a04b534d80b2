package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/flipbook-cli/tui/styles"
)

// StatusBarState holds the run settings and outcome shown in the status bar.
type StatusBarState struct {
	// Interval is the sampling interval in seconds
	Interval float64
	// Width is the page width in pixels
	Width int
	// Split is the fraction of each page taken from the next frame
	Split float64
	// Border indicates if pages get a border
	Border bool
	// Elapsed is the formatted run duration, empty while running
	Elapsed string
	// Failed indicates the run ended with an error
	Failed bool
}

// StatusBar renders a full-width bar with the run settings on the left and
// the run status on the right.
func StatusBar(state StatusBarState, width int) string {
	border := "no border"
	if state.Border {
		border = "border"
	}
	leftContent := fmt.Sprintf(" every %s │ %dpx │ split %g │ %s", formatInterval(state.Interval), state.Width, state.Split, border)

	var rightContent string
	switch {
	case state.Failed:
		rightContent = "✗ failed "
	case state.Elapsed != "":
		rightContent = "✓ " + state.Elapsed + " "
	default:
		rightContent = "● running "
	}

	// Calculate padding between left and right content
	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if padding < 1 {
		padding = 1
	}

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width)

	return statusBarStyle.Render(leftContent + strings.Repeat(" ", padding) + rightContent)
}

// formatInterval shows whole seconds without a fraction and otherwise up to
// three decimals.
func formatInterval(seconds float64) string {
	if seconds == float64(int(seconds)) {
		return fmt.Sprintf("%.0fs", seconds)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", seconds), "0"), ".") + "s"
}
