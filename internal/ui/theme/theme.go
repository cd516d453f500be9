// Package theme defines the lipgloss styles for CLI output.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm clinical blues with warning accents
var (
	Primary = lipgloss.Color("#2563EB") // Blue
	Success = lipgloss.Color("#22C55E") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Good = lipgloss.NewStyle().
		Foreground(Success)

	Overdue = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	DueToday = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)
)
