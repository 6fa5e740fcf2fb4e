package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/intake/internal/tui/themes"
)

// FieldKind distinguishes free text fields from fixed choices.
type FieldKind int

// Field kinds.
const (
	FieldText FieldKind = iota
	FieldChoice
)

// Choice is one option of a choice field.
type Choice struct {
	Label string
	Value string
}

type field struct {
	key     string
	label   string
	choices []Choice
	input   textinput.Model
	choice  int
	kind    FieldKind
}

// FormSubmitMsg is sent when the user submits the form.
type FormSubmitMsg struct{}

// FormCancelMsg is sent when the user abandons the form.
type FormCancelMsg struct{}

// FormModel is a vertical list of labelled fields.
type FormModel struct {
	theme  themes.Theme
	title  string
	fields []field
	focus  int
	width  int
}

// NewForm creates an empty form.
func NewForm(title string, theme themes.Theme) FormModel {
	return FormModel{
		title: title,
		theme: theme,
		width: 60,
	}
}

// AddText appends a text field.
func (f FormModel) AddText(key, label, value, placeholder string, limit int) FormModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.SetValue(value)
	// refocus discards blink commands, so the cursor must not blink.
	_ = input.Cursor.SetMode(cursor.CursorStatic)
	f.fields = append(f.fields, field{key: key, label: label, input: input, kind: FieldText})
	return f.refocus()
}

// AddChoice appends a choice field with selected preselected when present.
func (f FormModel) AddChoice(key, label string, choices []Choice, selected string) FormModel {
	idx := 0
	for i, c := range choices {
		if c.Value == selected {
			idx = i
			break
		}
	}
	f.fields = append(f.fields, field{key: key, label: label, choices: choices, choice: idx, kind: FieldChoice})
	return f.refocus()
}

// Value returns the current value of the field with key.
func (f FormModel) Value(key string) string {
	for _, fld := range f.fields {
		if fld.key != key {
			continue
		}
		if fld.kind == FieldChoice {
			if len(fld.choices) == 0 {
				return ""
			}
			return fld.choices[fld.choice].Value
		}
		return fld.input.Value()
	}
	return ""
}

// Focused returns the key of the focused field.
func (f FormModel) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].key
}

// Title returns the form heading.
func (f FormModel) Title() string { return f.title }

// Resize sets the rendering width.
func (f *FormModel) Resize(width int) {
	f.width = width
	for i := range f.fields {
		f.fields[i].input.Width = max(10, width-20)
	}
}

// Update handles navigation and forwards typing to the focused field.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(f.fields) == 0 {
		return f, nil
	}

	// Copy so earlier FormModel values keep their own fields.
	f.fields = append([]field(nil), f.fields...)
	current := &f.fields[f.focus]

	switch key.String() {
	case "enter":
		return f, func() tea.Msg { return FormSubmitMsg{} }
	case "esc":
		return f, func() tea.Msg { return FormCancelMsg{} }
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
		return f.refocus(), nil
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		return f.refocus(), nil
	}

	if current.kind == FieldChoice {
		if n := len(current.choices); n > 0 {
			switch key.String() {
			case "right", "l", " ":
				current.choice = (current.choice + 1) % n
			case "left", "h":
				current.choice = (current.choice - 1 + n) % n
			}
		}
		return f, nil
	}

	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	return f, cmd
}

func (f FormModel) refocus() FormModel {
	for i := range f.fields {
		if f.fields[i].kind != FieldText {
			continue
		}
		if i == f.focus {
			_ = f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
	return f
}

// View renders the form.
func (f FormModel) View() string {
	lines := []string{f.theme.Title.Render(f.title)}

	for i, fld := range f.fields {
		label := f.theme.FieldLabel.Render(fld.label)
		if i == f.focus {
			label = f.theme.FocusedLabel.Render(fld.label)
		}

		var value string
		if fld.kind == FieldChoice {
			value = f.renderChoice(fld, i == f.focus)
		} else {
			value = fld.input.View()
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}

	lines = append(lines, "", f.theme.Subtitle.Render("tab/↑↓ move • ←/→ change choice • enter save • esc cancel"))
	return f.theme.RoundedBox.Width(f.width).Render(strings.Join(lines, "\n"))
}

func (f FormModel) renderChoice(fld field, focused bool) string {
	if len(fld.choices) == 0 {
		return f.theme.Subtitle.Render("(none available)")
	}
	label := fld.choices[fld.choice].Label
	if focused {
		return f.theme.Highlighted.Render("‹ " + label + " ›")
	}
	return f.theme.Normal.Render(label)
}
