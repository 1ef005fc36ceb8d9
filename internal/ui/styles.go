// Package ui holds the terminal styles shared by the commands. When stdout
// is not a terminal, or NO_COLOR is set, every helper returns plain text.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color reports whether styled output is enabled.
var Color = detectColor(os.Stdout)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	Accent = lipgloss.Color("#7AA2F7")
	Green  = lipgloss.Color("#9ECE6A")
	Yellow = lipgloss.Color("#E0AF68")
	Red    = lipgloss.Color("#F7768E")
	Gray   = lipgloss.Color("#737AA2")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(Green)
	warnStyle    = lipgloss.NewStyle().Foreground(Yellow)
	errorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(Gray)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Accent).Padding(0, 2)
)

func render(style lipgloss.Style, s string) string {
	if !Color {
		return s
	}
	return style.Render(s)
}

// Title styles a top-level heading.
func Title(s string) string { return render(titleStyle, s) }

// Heading styles a section heading.
func Heading(s string) string { return render(headingStyle, s) }

// Success prefixes a check mark.
func Success(s string) string { return render(successStyle, "✓ "+s) }

// Warn prefixes a warning sign.
func Warn(s string) string { return render(warnStyle, "⚠ "+s) }

// Error formats an error line.
func Error(s string) string { return render(errorStyle, "✗ "+s) }

// Dim renders secondary text.
func Dim(s string) string { return render(dimStyle, s) }

// Bullet formats an item in a list.
func Bullet(s string) string { return "  • " + s }

// Banner frames the product name and tagline.
func Banner(name, tagline string) string {
	if !Color {
		return name + " - " + tagline
	}
	return boxStyle.Render(titleStyle.Render(name) + "\n" + dimStyle.Render(tagline))
}

// Rule is a horizontal separator.
func Rule(width int) string {
	return render(dimStyle, strings.Repeat("─", width))
}
