package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#00BFFF") // Deep sky blue
	colorSecondary = lipgloss.Color("#87CEEB") // Sky blue
	colorDanger    = lipgloss.Color("#FF6B6B") // Red for failures
	colorWarning   = lipgloss.Color("#FFD93D") // Yellow for warnings
	colorSuccess   = lipgloss.Color("#6BCF7F") // Green
	colorMuted     = lipgloss.Color("#6C757D") // Gray
	colorBorder    = lipgloss.Color("#4A90E2") // Border blue

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Status tab styles
	tabStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Banner styles
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true).
				Padding(0, 1)

	warningBannerStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true).
				Padding(0, 1)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0, 0, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Section header styles
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginTop(1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	activeInputBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)
)

// statusStyle colours a derived status
func statusStyle(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusCompleted:
		return mutedStyle
	case models.StatusArrived:
		return successStyle
	case models.StatusDelayed:
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	case models.StatusArrivingSoon:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case models.StatusExpected:
		return lipgloss.NewStyle().Foreground(colorSecondary)
	default:
		return mutedStyle
	}
}

// bannerStyle picks the banner colour for an aggregation error
func bannerStyle(kind aggregator.ErrorKind) lipgloss.Style {
	if kind == aggregator.ErrorMalformedContinuation {
		return warningBannerStyle
	}
	return errorBannerStyle
}
