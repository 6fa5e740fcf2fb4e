package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/intake/internal/tui/themes"
)

// NewTable creates a focused table styled with theme.
func NewTable(columns []table.Column, theme themes.Theme) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return t
}

// SetRows replaces the table rows and keeps the cursor in range.
func SetRows(t *table.Model, rows []table.Row) {
	t.SetRows(rows)
	switch {
	case len(rows) == 0:
		t.SetCursor(0)
	case t.Cursor() >= len(rows):
		t.SetCursor(len(rows) - 1)
	case t.Cursor() < 0:
		t.SetCursor(0)
	}
}

// Truncate shortens s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
