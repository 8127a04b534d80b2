// Package styles provides Lipgloss styles for the TUI using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is the status bar background
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour
	Purple = lipgloss.Color("#5C4F4B")
	// Lavender is a secondary text colour
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is used for headers
	Pink = lipgloss.Color("#D33061")
	// Cyan is used for interactive elements and the active stage
	Cyan = lipgloss.Color("#3097C6")
	// Amber marks the unfilled part of progress bars
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages
	Green = lipgloss.Color("#A6A75D")
)

// Title is the style for the screen heading
var Title = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
