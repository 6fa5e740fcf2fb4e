// Package tui implements the interactive management console.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
	"github.com/Veraticus/intake/internal/query"
	"github.com/Veraticus/intake/internal/tui/components"
	"github.com/Veraticus/intake/internal/tui/themes"
)

// Tab selects which listing is shown.
type Tab int

// Tabs.
const (
	TabCategories Tab = iota
	TabSubmissions
)

// Mode represents what the keyboard currently drives.
type Mode int

// Modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeForm
	ModeConfirmDelete
	ModeHelp
)

// unavailableCategory is shown for submissions whose category was deleted.
const unavailableCategory = "category unavailable"

type notice struct {
	text    string
	isError bool
}

// pendingDelete identifies the record awaiting confirmation.
type pendingDelete struct {
	id   string
	name string
	tab  Tab
}

// Model holds the console state.
type Model struct {
	ctx            context.Context
	theme          themes.Theme
	svc            *admin.Service
	categoryView   *query.CategoryView
	submissionView *query.SubmissionView
	pending        *pendingDelete
	config         Config
	notice         notice
	form           components.FormModel
	editingID      string
	search         textinput.Model
	keymap         KeyMap
	categories     []model.Category
	categoryTable  table.Model
	submitTable    table.Model
	width          int
	height         int
	tab            Tab
	mode           Mode
	ready          bool
	quitting       bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	search := textinput.New()
	search.Placeholder = "Search by name or description..."
	search.Prompt = "/ "
	search.CharLimit = 100
	_ = search.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		ctx:            cfg.Context,
		theme:          cfg.Theme,
		svc:            cfg.Service,
		config:         cfg,
		keymap:         DefaultKeyMap(),
		search:         search,
		categoryView:   query.NewCategoryView(nil),
		submissionView: query.NewSubmissionView(nil),
		categoryTable: components.NewTable([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Slug", Width: 24},
			{Title: "Description", Width: 40},
		}, cfg.Theme),
		submitTable: components.NewTable([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Category", Width: 22},
			{Title: "Status", Width: 8},
			{Title: "Quota", Width: 6},
			{Title: "Year", Width: 10},
			{Title: "Open", Width: 11},
			{Title: "Close", Width: 11},
		}, cfg.Theme),
		width:  cfg.Width,
		height: cfg.Height,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.handleResize()
	return m
}

// Init loads both listings.
func (m Model) Init() tea.Cmd {
	return m.reload()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.notice = notice{text: common.UserMessage(msg.err), isError: true}
			return m, nil
		}
		m.categories = msg.categories
		m.categoryView.SetSource(msg.categories)
		m.refreshRows()
		m.ready = true
		return m, nil

	case submissionsLoadedMsg:
		if msg.err != nil {
			m.notice = notice{text: common.UserMessage(msg.err), isError: true}
			return m, nil
		}
		m.submissionView.SetSource(msg.submissions)
		m.refreshRows()
		m.ready = true
		return m, nil

	case mutationDoneMsg:
		return m.handleMutation(msg)

	case components.FormSubmitMsg:
		if m.mode == ModeForm {
			return m.submitForm()
		}
		return m, nil

	case components.FormCancelMsg:
		if m.mode == ModeForm {
			m.mode = ModeBrowse
			m.notice = notice{}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeForm:
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeBrowse
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keymap.NextTab):
		if m.tab == TabCategories {
			m.tab = TabSubmissions
		} else {
			m.tab = TabCategories
		}
		return m, nil

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		m.search.Focus()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleActive):
		if m.tab == TabSubmissions {
			m.submissionView.SetActiveOnly(!m.submissionView.Filter().ActiveOnly)
			m.refreshRows()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keymap.New):
		m.openForm("")
		return m, nil

	case key.Matches(msg, m.keymap.Edit):
		if id, _, ok := m.selected(); ok {
			m.openForm(id)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		if id, name, ok := m.selected(); ok {
			m.pending = &pendingDelete{id: id, name: name, tab: m.tab}
			m.mode = ModeConfirmDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.tab == TabSubmissions {
		m.submitTable, cmd = m.submitTable.Update(msg)
	} else {
		m.categoryTable, cmd = m.categoryTable.Update(msg)
	}
	return m, cmd
}

// updateSearch feeds keystrokes to the shared search box and re-filters both
// listings on every change. Enter keeps the query, Esc clears it.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	m.categoryView.SetSearch(m.search.Value())
	m.submissionView.SetSearch(m.search.Value())
	m.refreshRows()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		target := m.pending
		m.pending = nil
		m.mode = ModeBrowse
		if target == nil {
			return m, nil
		}
		return m, m.deleteRecord(target.tab, target.id, target.name)
	case key.Matches(msg, m.keymap.Cancel):
		m.pending = nil
		m.mode = ModeBrowse
	}
	return m, nil
}

// handleMutation applies a store outcome. Failures leave the listing and any
// open form untouched.
func (m Model) handleMutation(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = notice{text: common.UserMessage(msg.err), isError: true}
		return m, nil
	}

	m.notice = notice{text: msg.success}
	if m.mode == ModeForm {
		m.mode = ModeBrowse
	}
	m.editingID = ""
	return m, m.reload()
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.svc == nil {
		return m, nil
	}
	if m.tab == TabCategories {
		return m, m.saveCategory(m.editingID, categoryFromForm(m.form))
	}

	input, err := submissionFromForm(m.form)
	if err != nil {
		m.notice = notice{text: common.UserMessage(err), isError: true}
		return m, nil
	}
	return m, m.saveSubmission(m.editingID, input)
}

// openForm shows a create form (id empty) or an edit form for id.
func (m *Model) openForm(id string) {
	m.editingID = id
	m.notice = notice{}
	m.mode = ModeForm

	if m.tab == TabCategories {
		var current model.Category
		for _, c := range m.categories {
			if c.ID == id {
				current = c
				break
			}
		}
		title := "New category"
		if id != "" {
			title = "Edit category"
		}
		m.form = components.NewForm(title, m.theme).
			AddText(fieldName, "Name", current.Name, "e.g. Jalur Reguler", 120).
			AddText(fieldDescription, "Description", current.Description, "optional", 500)
		m.form.Resize(m.width)
		return
	}

	input := model.SubmissionInput{Status: model.StatusDraft, Quota: 1}
	if m.svc != nil {
		input = m.svc.NewSubmissionInput()
	}
	title := "New submission"
	if id != "" {
		title = "Edit submission"
		for _, s := range m.submissionView.Items() {
			if s.ID == id {
				input = admin.ToInput(s.Submission)
				break
			}
		}
	}

	m.form = components.NewForm(title, m.theme).
		AddText(fieldName, "Name", input.Name, "e.g. Gelombang 1", 120).
		AddChoice(fieldCategory, "Category", m.categoryChoices(input.CategoryID), input.CategoryID).
		AddChoice(fieldStatus, "Status", statusChoices(), string(input.Status)).
		AddText(fieldQuota, "Quota", strconv.Itoa(input.Quota), "1", 6).
		AddText(fieldAcademicYear, "Academic year", input.AcademicYear, "2025/2026", 20).
		AddText(fieldOpenDate, "Open date", input.OpenDate, "YYYY-MM-DD", 20).
		AddText(fieldCloseDate, "Close date", input.CloseDate, "YYYY-MM-DD", 20).
		AddText(fieldDescription, "Description", input.Description, "optional", 1000)
	m.form.Resize(m.width)
}

// categoryChoices lists every category; an orphaned current reference is kept
// as its own choice so saving does not silently re-point it.
func (m Model) categoryChoices(current string) []components.Choice {
	choices := make([]components.Choice, 0, len(m.categories)+1)
	found := current == ""
	for _, c := range m.categories {
		choices = append(choices, components.Choice{Label: c.Name, Value: c.ID})
		if c.ID == current {
			found = true
		}
	}
	if !found {
		choices = append([]components.Choice{{Label: unavailableCategory, Value: current}}, choices...)
	}
	return choices
}

func statusChoices() []components.Choice {
	statuses := model.AllStatuses()
	choices := make([]components.Choice, len(statuses))
	for i, s := range statuses {
		choices[i] = components.Choice{Label: s.Label(), Value: string(s)}
	}
	return choices
}

// selected returns the record under the cursor of the active table.
func (m Model) selected() (id, name string, ok bool) {
	if m.tab == TabSubmissions {
		items := m.submissionView.Items()
		i := m.submitTable.Cursor()
		if i < 0 || i >= len(items) {
			return "", "", false
		}
		return items[i].ID, items[i].Name, true
	}

	items := m.categoryView.Items()
	i := m.categoryTable.Cursor()
	if i < 0 || i >= len(items) {
		return "", "", false
	}
	return items[i].ID, items[i].Name, true
}

// refreshRows rebuilds both tables from the memoised views.
func (m *Model) refreshRows() {
	cats := m.categoryView.Items()
	catRows := make([]table.Row, len(cats))
	for i, c := range cats {
		catRows[i] = table.Row{c.Name, c.Slug, components.Truncate(c.Description, 40)}
	}
	components.SetRows(&m.categoryTable, catRows)

	subs := m.submissionView.Items()
	subRows := make([]table.Row, len(subs))
	for i, s := range subs {
		subRows[i] = table.Row{
			s.Name,
			s.CategoryName(unavailableCategory),
			s.Status.Label(),
			strconv.Itoa(s.Quota),
			s.AcademicYear,
			s.OpenDate,
			s.CloseDate,
		}
	}
	components.SetRows(&m.submitTable, subRows)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	// Header, tabs, search, notice and help take eight lines.
	h := max(3, m.height-8)
	m.categoryTable.SetHeight(h)
	m.submitTable.SetHeight(h)
	m.categoryTable.SetWidth(m.width)
	m.submitTable.SetWidth(m.width)
	m.search.Width = max(10, m.width-4)
	if m.mode == ModeForm {
		m.form.Resize(m.width)
	}
}
