package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/gifnar/volunteerlog/internal/entry"
	"github.com/gifnar/volunteerlog/internal/logbook"
	"github.com/gifnar/volunteerlog/internal/store"
)

const (
	formEntry = "entry"
	formClear = "clear"
)

type entriesModel struct {
	book     *logbook.Logbook
	settings *store.Store
	alerts   *alertQueue
	width    int
	height   int

	entries []entry.Entry
	cursor  int

	formActive bool
	form       *huh.Form
	formType   string

	// Form field pointers (survive value copies). Values are kept between
	// submissions so a rejected entry can be corrected.
	formDate       *string
	formOrg        *string
	formHours      *string
	formTags       *string
	formTasks      *string
	formReflection *string
	formConfirm    *bool
}

func newEntriesModel(lb *logbook.Logbook, s *store.Store, alerts *alertQueue) entriesModel {
	date, org, hours, tags, tasks, reflection := "", "", "", "", "", ""
	confirm := false
	return entriesModel{
		book:           lb,
		settings:       s,
		alerts:         alerts,
		entries:        lb.Entries(),
		formDate:       &date,
		formOrg:        &org,
		formHours:      &hours,
		formTags:       &tags,
		formTasks:      &tasks,
		formReflection: &reflection,
		formConfirm:    &confirm,
	}
}

func (m *entriesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type entriesDataMsg struct {
	entries []entry.Entry
}

// refresh snapshots the list now; the returned command only delivers it.
func (m entriesModel) refresh() tea.Cmd {
	entries := m.book.Entries()
	return func() tea.Msg {
		return entriesDataMsg{entries: entries}
	}
}

func (m entriesModel) update(msg tea.Msg) (entriesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case entriesDataMsg:
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = max(0, len(m.entries)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showEntryForm()
		case key.Matches(msg, keys.Clear):
			if len(m.entries) > 0 {
				return m.showClearConfirm()
			}
		}
	}
	return m, nil
}

func (m entriesModel) showEntryForm() (entriesModel, tea.Cmd) {
	if strings.TrimSpace(*m.formDate) == "" {
		*m.formDate = time.Now().Format("2006-01-02")
	}
	if strings.TrimSpace(*m.formHours) == "" {
		*m.formHours = m.defaultHours()
	}
	m.formType = formEntry

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Placeholder("2025-12-27").Value(m.formDate),
			huh.NewInput().Title("Organization").Placeholder("Houston Food Bank").Value(m.formOrg),
			huh.NewInput().Title("Hours").Placeholder("2.0").Value(m.formHours),
			huh.NewInput().Title("Tags (comma-separated)").Placeholder("volunteering, service, leadership").Value(m.formTags),
		),
		huh.NewGroup(
			huh.NewInput().Title("Tasks / Role").Placeholder("Sorting, boxing, loading, teamwork…").Value(m.formTasks),
			huh.NewText().Title("Reflection").
				Placeholder("What did you learn? Who did you serve?").
				Value(m.formReflection),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m entriesModel) showClearConfirm() (entriesModel, tea.Cmd) {
	*m.formConfirm = false
	m.formType = formClear

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear ALL saved entries on this device?").
				Affirmative("Clear").
				Negative("Keep").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m entriesModel) updateForm(msg tea.Msg) (entriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		switch m.formType {
		case formEntry:
			return m.submitEntry()
		case formClear:
			return m.submitClear()
		}
	}

	return m, cmd
}

// submitEntry hands the form values to the logbook. On success the
// per-session fields reset while date, organization and hours stay for the
// next entry; on failure everything is kept.
func (m entriesModel) submitEntry() (entriesModel, tea.Cmd) {
	e, err := m.book.Add(entry.Fields{
		Date:       *m.formDate,
		Org:        *m.formOrg,
		Hours:      *m.formHours,
		Tasks:      *m.formTasks,
		Reflection: *m.formReflection,
		Tags:       *m.formTags,
	})
	if err != nil {
		return m, m.alerts.drain()
	}

	*m.formTasks = ""
	*m.formReflection = ""
	*m.formTags = ""
	m.entries = m.book.Entries()
	m.cursor = 0
	return m, func() tea.Msg { return entryAddedMsg{entry: e} }
}

func (m entriesModel) submitClear() (entriesModel, tea.Cmd) {
	if !*m.formConfirm {
		return m, nil
	}
	m.book.ClearConfirmed()
	m.entries = m.book.Entries()
	m.cursor = 0
	return m, func() tea.Msg { return entriesClearedMsg{} }
}

func (m entriesModel) defaultHours() string {
	if m.settings == nil {
		return "1.0"
	}
	return m.settings.DefaultHours()
}

func (m entriesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Entry")
		if m.formType == formClear {
			title = errorStyle.Bold(true).Render("Clear All")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	list := m.renderList(w)
	if len(m.entries) == 0 {
		return list
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, m.renderDetail(w))
}

func (m entriesModel) renderList(w int) string {
	title := titleStyle.Render(fmt.Sprintf("Saved Entries (%d)", len(m.entries)))

	if len(m.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press n to log a session."),
		)
		return panelStyle.Width(w).Render(content)
	}

	total := highlightStyle.Render(formatHours(entry.TotalHours(m.entries)))
	rows := []string{title + "  " + total, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %7s  %s", "Date", "Hours", "Organization")))

	// Keep the cursor visible when the list is taller than the panel.
	visible := max(3, m.height/2-6)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(m.entries), start+visible)

	orgWidth := max(10, w-28)
	for i := start; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%-10s %7s  %s", cursor, truncate(e.Date, 10), formatHours(e.Hours), truncate(e.Org, orgWidth))
		rows = append(rows, style.Render(row))
	}
	if end < len(m.entries) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(m.entries)-end)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: export  C: clear all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m entriesModel) renderDetail(w int) string {
	if m.cursor >= len(m.entries) {
		return ""
	}
	e := m.entries[m.cursor]

	meta := mutedStyle.Render(fmt.Sprintf("Date: %s   Hours: %s   Created: %s",
		e.Date, formatHours(e.Hours), e.CreatedAt))
	rows := []string{titleStyle.Render(e.Org), meta}

	if strings.TrimSpace(e.Tasks) != "" {
		rows = append(rows, "", labelStyle.Render("Tasks: ")+e.Tasks)
	}
	if strings.TrimSpace(e.Reflection) != "" {
		rows = append(rows, "", labelStyle.Render("Reflection: ")+e.Reflection)
	}
	if tags := e.TagList(); len(tags) > 0 {
		var rendered []string
		for _, t := range tags {
			rendered = append(rendered, tagStyle.Render("#"+t))
		}
		rows = append(rows, "", labelStyle.Render("Tags: ")+strings.Join(rendered, " "))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
