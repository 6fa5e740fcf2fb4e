package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.mode {
	case ModeForm:
		body = m.form.View()
	case ModeHelp:
		body = m.renderHelp()
	default:
		body = m.renderList()
	}

	sections := []string{m.renderTabs(), m.renderSearch(), body}
	if m.mode == ModeConfirmDelete && m.pending != nil {
		sections = append(sections, m.theme.StatusError.Render(
			fmt.Sprintf("Delete %q? y to confirm, n to cancel", m.pending.name)))
	}
	sections = append(sections, m.renderNotice())
	if m.config.ShowHelp {
		sections = append(sections, m.renderShortHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("intake"),
		m.theme.Subtitle.Render("Loading categories and submissions..."),
	)
	if m.notice.isError {
		content = lipgloss.JoinVertical(lipgloss.Center, content, m.renderNotice())
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderTabs() string {
	labels := []struct {
		title string
		tab   Tab
		shown int
		total int
	}{
		{"Categories", TabCategories, len(m.categoryView.Items()), m.categoryView.Total()},
		{"Submissions", TabSubmissions, len(m.submissionView.Items()), m.submissionView.Total()},
	}

	tabs := make([]string, 0, len(labels))
	for _, l := range labels {
		text := fmt.Sprintf("%s %d/%d", l.title, l.shown, l.total)
		if l.tab == m.tab {
			tabs = append(tabs, m.theme.ActiveTab.Render(text))
		} else {
			tabs = append(tabs, m.theme.InactiveTab.Render(text))
		}
	}

	if m.tab == TabSubmissions && m.submissionView.Filter().ActiveOnly {
		tabs = append(tabs, m.theme.StatusInfo.Render(" open only"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSearch() string {
	if m.mode == ModeSearch || m.search.Value() != "" {
		return m.search.View()
	}
	return m.theme.Subtitle.Render("Press / to search")
}

func (m Model) renderList() string {
	if m.tab == TabSubmissions {
		if len(m.submissionView.Items()) == 0 {
			return m.renderEmpty("submissions")
		}
		return m.submitTable.View() + "\n" + m.renderSelectedStatus()
	}

	if len(m.categoryView.Items()) == 0 {
		return m.renderEmpty("categories")
	}
	return m.categoryTable.View()
}

func (m Model) renderEmpty(kind string) string {
	if m.search.Value() != "" || (kind == "submissions" && m.submissionView.Filter().ActiveOnly) {
		return m.theme.Subtitle.Render(fmt.Sprintf("No %s match the current filter.", kind))
	}
	return m.theme.Subtitle.Render(fmt.Sprintf("No %s yet. Press n to add one.", kind))
}

// renderSelectedStatus shows the colored badge of the highlighted submission.
func (m Model) renderSelectedStatus() string {
	items := m.submissionView.Items()
	i := m.submitTable.Cursor()
	if i < 0 || i >= len(items) {
		return ""
	}
	sub := items[i]
	return fmt.Sprintf("%s  %s", m.theme.StatusBadge(sub.Status), m.theme.Subtitle.Render(sub.Description))
}

func (m Model) renderNotice() string {
	switch {
	case m.notice.text == "":
		return ""
	case m.notice.isError:
		return m.theme.StatusError.Render("✗ " + m.notice.text)
	default:
		return m.theme.StatusSuccess.Render("✓ " + m.notice.text)
	}
}

func (m Model) renderShortHelp() string {
	return m.theme.Subtitle.Render(joinBindings(m.keymap.ShortHelp()))
}

func (m Model) renderHelp() string {
	lines := []string{m.theme.Title.Render("Keys")}
	for _, group := range m.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Subtitle.Render("Press any key to return"))
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func joinBindings(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
