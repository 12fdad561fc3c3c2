// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Underline(true)
)
