package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
	help  lipgloss.Style
	key   lipgloss.Style
	warn  lipgloss.Style
}

func newTheme(color bool) theme {
	if !color {
		plain := lipgloss.NewStyle()
		return theme{
			title: plain,
			label: plain,
			value: plain,
			muted: plain,
			help:  plain,
			key:   plain,
			warn:  plain,
		}
	}

	accent := lipgloss.Color("#58d4ff")
	muted := lipgloss.Color("#9fb3c8")

	return theme{
		title: lipgloss.NewStyle().Foreground(accent).Bold(true),
		label: lipgloss.NewStyle().Faint(true),
		value: lipgloss.NewStyle().Foreground(accent).Bold(true),
		muted: lipgloss.NewStyle().Foreground(muted),
		help:  lipgloss.NewStyle().Faint(true),
		key:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8700")),
	}
}
