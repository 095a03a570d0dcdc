package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette bundles the styles and symbols every renderer pulls from.
type Palette struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style

	Card, RestCard, Pill, Badge, Button lipgloss.Style

	// Mood backgrounds for the focus screen
	Focus, Break, Warning, Complete lipgloss.Style

	Sun, Moon string
}

var (
	light = Palette{
		Name:     "light",
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("32")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("29")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("161")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 2),
		RestCard: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("36")).Foreground(lipgloss.Color("29")).Padding(0, 2).Align(lipgloss.Center),
		Pill:     lipgloss.NewStyle().Background(lipgloss.Color("254")).Foreground(lipgloss.Color("235")).Padding(0, 1),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Button:   lipgloss.NewStyle().Background(lipgloss.Color("39")).Foreground(lipgloss.Color("231")).Bold(true).Padding(0, 1),
		Focus:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		Break:    lipgloss.NewStyle().Foreground(lipgloss.Color("29")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true).Blink(true),
		Complete: lipgloss.NewStyle().Foreground(lipgloss.Color("136")).Bold(true),
		Sun:      "☀",
		Moon:     "☾",
	}

	dark = Palette{
		Name:     "dark",
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#74c7ec")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#45475a")).Padding(0, 2),
		RestCard: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#94e2d5")).Foreground(lipgloss.Color("#a6e3a1")).Padding(0, 2).Align(lipgloss.Center),
		Pill:     lipgloss.NewStyle().Background(lipgloss.Color("#313244")).Foreground(lipgloss.Color("#cdd6f4")).Padding(0, 1),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Italic(true),
		Button:   lipgloss.NewStyle().Background(lipgloss.Color("#74c7ec")).Foreground(lipgloss.Color("#1e1e2e")).Bold(true).Padding(0, 1),
		Focus:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")),
		Break:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true).Blink(true),
		Complete: lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")).Bold(true),
		Sun:      "☀",
		Moon:     "☾",
	}
)

var current = light

// SetDark swaps the palette every renderer reads.
func SetDark(on bool) {
	if on {
		current = dark
	} else {
		current = light
	}
}

func Current() Palette { return current }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if done > total {
		done = total
	}
	if done < 0 {
		done = 0
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", current.Accent.Render(bar), pct)
}

// Panel frames inner with the current palette.
func Panel(inner string) string {
	return current.Card.Render(inner)
}
