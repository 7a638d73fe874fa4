package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Open   func(format string, a ...interface{}) string
	Closed func(format string, a ...interface{}) string
	Error  func(format string, a ...interface{}) string
	Day    func(format string, a ...interface{}) string
	Hours  func(format string, a ...interface{}) string
	Header func(format string, a ...interface{}) string
	Muted  func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Open:   noColor,
			Closed: noColor,
			Error:  noColor,
			Day:    noColor,
			Hours:  noColor,
			Header: noColor,
			Muted:  noColor,
		}
	}

	return &Colors{
		Open:   color.New(color.FgHiGreen, color.Bold).SprintfFunc(),
		Closed: color.New(color.FgHiRed, color.Bold).SprintfFunc(),
		Error:  color.New(color.FgRed).SprintfFunc(),
		Day:    color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Hours:  color.New(color.FgWhite).SprintfFunc(),
		Header: color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:  color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
