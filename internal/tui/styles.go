package tui

import "github.com/charmbracelet/lipgloss"

// Colors matching the output package scheme
var (
	colorCyan   = lipgloss.Color("6")  // Cyan - focus
	colorYellow = lipgloss.Color("3")  // Yellow - loading
	colorRed    = lipgloss.Color("1")  // Red - brand
	colorWhite  = lipgloss.Color("15") // White - text
	colorGray   = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleMuted  = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleDay    = lipgloss.NewStyle().Foreground(colorCyan)
	styleToday  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Underline(true)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Widget tiles
var (
	styleTile = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Width(tileWidth).
			Align(lipgloss.Center).
			Padding(0, 1)

	styleTileSelected = styleTile.BorderForeground(colorCyan)
)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
