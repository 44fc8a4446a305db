package tui

import (
	"charm.land/lipgloss/v2"

	"tasnim.dev/vpc-sweep/internal/tui/theme"
)

var (
	// Report styles that compose from the shared theme
	titleStyle = theme.TitleStyle

	headerStyle = theme.HeaderStyle

	labelStyle = theme.MutedStyle

	dryRunStyle = theme.WarningStyle

	errorStyle = theme.ErrorStyle

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary)

	promptStyle = lipgloss.NewStyle().
			Bold(true)

	helpStyle = theme.HelpStyle

	boxStyle = theme.DashboardBoxStyle

	dangerStyle = theme.DangerBoxStyle
)
