// Package cli provides the interactive terminal pieces: styled output
// and the manual-review prompter.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// SuccessColor indicates accepted transactions.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates duplicates and skipped messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor is used for secondary detail.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	// SuccessStyle formats acceptance messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats duplicate and skip notices.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// MessageBoxStyle frames the SMS body under review.
	MessageBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)
)
