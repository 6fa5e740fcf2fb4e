package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/intake/internal/tui/themes"
)

func typeText(f FormModel, text string) FormModel {
	for _, r := range text {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func press(f FormModel, k tea.KeyType) (FormModel, tea.Cmd) {
	return f.Update(tea.KeyMsg{Type: k})
}

func TestForm_TypingAndNavigation(t *testing.T) {
	f := NewForm("New category", themes.Default).
		AddText("name", "Name", "", "name", 100).
		AddText("description", "Description", "prefilled", "", 500)

	assert.Equal(t, "name", f.Focused())
	f = typeText(f, "Reguler")
	assert.Equal(t, "Reguler", f.Value("name"))

	f, _ = press(f, tea.KeyTab)
	assert.Equal(t, "description", f.Focused())
	f = typeText(f, "!")
	assert.Equal(t, "prefilled!", f.Value("description"))

	f, _ = press(f, tea.KeyTab)
	assert.Equal(t, "name", f.Focused(), "focus wraps around")

	f, _ = press(f, tea.KeyShiftTab)
	assert.Equal(t, "description", f.Focused())
	assert.Equal(t, "Reguler", f.Value("name"))
	assert.Empty(t, f.Value("missing"))
}

func TestForm_Choice(t *testing.T) {
	choices := []Choice{{Label: "Draft", Value: "draft"}, {Label: "Open", Value: "open"}, {Label: "Closed", Value: "closed"}}
	f := NewForm("New submission", themes.Default).
		AddChoice("status", "Status", choices, "open")

	assert.Equal(t, "open", f.Value("status"))

	f, _ = press(f, tea.KeyRight)
	assert.Equal(t, "closed", f.Value("status"))
	f, _ = press(f, tea.KeyRight)
	assert.Equal(t, "draft", f.Value("status"))
	f, _ = press(f, tea.KeyLeft)
	assert.Equal(t, "closed", f.Value("status"))

	empty := NewForm("x", themes.Default).AddChoice("category", "Category", nil, "")
	empty, _ = press(empty, tea.KeyRight)
	assert.Empty(t, empty.Value("category"))
	assert.Contains(t, empty.View(), "none available")
}

func TestForm_SubmitAndCancel(t *testing.T) {
	f := NewForm("x", themes.Default).AddText("name", "Name", "", "", 10)

	_, cmd := press(f, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, FormSubmitMsg{}, cmd())

	_, cmd = press(f, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, FormCancelMsg{}, cmd())
}

func TestForm_UpdateDoesNotAliasPreviousValue(t *testing.T) {
	before := NewForm("x", themes.Default).AddText("name", "Name", "", "", 10)
	after := typeText(before, "abc")

	assert.Equal(t, "abc", after.Value("name"))
	assert.Empty(t, before.Value("name"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
