package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/flipbook-cli/tui/styles"
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func button(bg, text lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 2).MarginRight(1)
}

// Theme returns the huh theme for the flipbook forms. It styles notes, text
// inputs and confirms, the only fields the forms use; everything else keeps
// huh.ThemeBase. The focused field is marked with the same cyan as the
// active pipeline stage.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Cyan).
		PaddingLeft(1)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = fg(styles.Pink).Bold(true)
	t.Focused.NoteTitle = fg(styles.Pink).Bold(true).MarginBottom(1)
	t.Focused.Description = fg(styles.Lavender)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(styles.Red)
	t.Focused.ErrorMessage = fg(styles.Red)

	t.Focused.TextInput.Cursor = fg(styles.Cyan)
	t.Focused.TextInput.Placeholder = fg(styles.Purple)
	t.Focused.TextInput.Prompt = fg(styles.Cyan)
	t.Focused.TextInput.Text = fg(styles.LightLavender)

	// Confirm buttons: green for the highlighted choice, as for a finished run.
	t.Focused.FocusedButton = button(styles.Green, styles.DeepPurple).Bold(true)
	t.Focused.BlurredButton = button(styles.Purple, styles.LightLavender)
	t.Focused.Next = t.Focused.FocusedButton

	// Blurred fields keep the focused layout without the accent colours.
	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.Title = fg(styles.Lavender)
	t.Blurred.NoteTitle = fg(styles.Lavender).Bold(true).MarginBottom(1)
	t.Blurred.Description = fg(styles.Purple)
	t.Blurred.TextInput.Cursor = fg(styles.Purple)
	t.Blurred.TextInput.Prompt = fg(styles.Purple)
	t.Blurred.TextInput.Text = fg(styles.Lavender)
	t.Blurred.FocusedButton = button(styles.Purple, styles.Lavender)
	t.Blurred.BlurredButton = button(styles.DeepPurple, styles.Purple)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}
