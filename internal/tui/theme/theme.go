package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary   = lipgloss.Color("#33A8FF")
	Secondary = lipgloss.Color("#163047")
	Muted     = lipgloss.Color("#6B7280")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Muted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ProfileStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(1, 0, 0, 0)

	DashboardBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	DangerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(0, 1)

	DashboardTitleStyle = lipgloss.NewStyle().
				Bold(true)
)

// StatusColor maps region and resource statuses to theme colors.
func StatusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "completed", "disabled", "removable":
		return Success
	case "failed", "error":
		return Error
	case "skipped", "would-disable", "protected":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus renders a status string with a colored bullet.
func RenderStatus(status string) string {
	c := StatusColor(status)
	bullet := lipgloss.NewStyle().Foreground(c).Render("●")
	return bullet + " " + status
}
