// Package themes holds the console's color palettes and derived styles.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/intake/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	RoundedBox    lipgloss.Style
	FieldLabel    lipgloss.Style
	FocusedLabel  lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	BadgeOpen     lipgloss.Style
	BadgeClosed   lipgloss.Style
	BadgeDraft    lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Border        lipgloss.Color
	Muted         lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, errColor, info lipgloss.Color
	foreground, background, border, muted, subtle       lipgloss.Color
}

func build(p palette) Theme {
	badge := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errColor,
		Info:       p.info,
		Foreground: p.foreground,
		Background: p.background,
		Border:     p.border,
		Muted:      p.muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.background).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(p.border).
			Foreground(p.foreground),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.background).
			Background(p.primary).
			Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		FieldLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(16),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Width(16),

		StatusSuccess: badge(p.success),
		StatusError:   badge(p.errColor),
		StatusInfo:    badge(p.info),

		BadgeOpen:   badge(p.success),
		BadgeClosed: badge(p.errColor),
		BadgeDraft:  lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:    lipgloss.Color("#7c3aed"),
	secondary:  lipgloss.Color("#a78bfa"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	errColor:   lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	foreground: lipgloss.Color("#fafafa"),
	background: lipgloss.Color("#1a1a1a"),
	border:     lipgloss.Color("#404040"),
	muted:      lipgloss.Color("#737373"),
	subtle:     lipgloss.Color("#a3a3a3"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    lipgloss.Color("#cba6f7"),
	secondary:  lipgloss.Color("#f5c2e7"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	errColor:   lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	foreground: lipgloss.Color("#cdd6f4"),
	background: lipgloss.Color("#1e1e2e"),
	border:     lipgloss.Color("#45475a"),
	muted:      lipgloss.Color("#6c7086"),
	subtle:     lipgloss.Color("#a6adc8"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// StatusBadge renders the label for a submission status.
func (t Theme) StatusBadge(status model.SubmissionStatus) string {
	switch status {
	case model.StatusOpen:
		return t.BadgeOpen.Render(status.Label())
	case model.StatusClosed:
		return t.BadgeClosed.Render(status.Label())
	default:
		return t.BadgeDraft.Render(status.Label())
	}
}
