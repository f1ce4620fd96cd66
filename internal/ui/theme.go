// Package ui provides the shared terminal styles and icons used by the
// CLI commands and the board. The configurable colors and icons are
// applied from the theme config at startup; the rest are fixed.
package ui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edaskel/questlog/internal/config"
)

// Icons used across the CLI output and the board. The app, done,
// pending, and streak icons are theme-configurable.
var (
	IconApp     = "🗺️"
	IconDone    = "✅"
	IconPending = "⭕"
	IconStreak  = "🔥"
)

const (
	IconTrophy = "🏆"
	IconBolt   = "⚡"
	IconBox    = "📦"
	IconPlus   = "➕"
	IconWarn   = "⚠️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
)

// resolveTheme fills any empty string fields in the given ThemeConfig
// with defaults.
func resolveTheme(theme config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	rv := reflect.ValueOf(&theme).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return theme
}

// Apply rebuilds the configurable styles and icons from the theme
// config. Empty fields fall back to the theme defaults. Call once at
// startup, before any rendering.
func Apply(theme config.ThemeConfig) {
	theme = resolveTheme(theme)

	Title = Title.Foreground(lipgloss.Color(theme.ColorAccent))
	Good = Good.Foreground(lipgloss.Color(theme.ColorGood))
	Gold = Gold.Foreground(lipgloss.Color(theme.ColorGold))
	Muted = Muted.Foreground(lipgloss.Color(theme.ColorMuted))

	IconApp = theme.IconApp
	IconDone = theme.IconDone
	IconPending = theme.IconPending
	IconStreak = theme.IconStreak
}

// Heading renders an icon-prefixed section title.
func Heading(icon, text string) string {
	return Title.Render(fmt.Sprintf("%s %s", icon, text))
}

// LabelValue renders a "Label: value" line with a styled label.
func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// ProgressBar renders a fixed-width bar filled to the given ratio.
// Ratios outside [0,1] are clamped.
func ProgressBar(ratio float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
