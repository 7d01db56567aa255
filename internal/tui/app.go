package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gifnar/volunteerlog/internal/logbook"
	"github.com/gifnar/volunteerlog/internal/store"
)

const (
	exportCSV = iota
	exportJSON
)

var exportFormats = []string{"CSV", "JSON"}

// App is the root Bubble Tea model.
type App struct {
	book     *logbook.Logbook
	store    *store.Store
	download *logbook.DirDownloader
	width    int
	height   int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	entries  entriesModel
	reports  reportsModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool
}

// NewApp opens the logbook from repo and wires the views to it. Exports go
// to the export_dir setting, or exportDir when that setting is blank.
func NewApp(repo logbook.Repository, s *store.Store, exportDir string, opts ...logbook.Option) App {
	h := help.New()
	h.ShowAll = false

	alerts := &alertQueue{}
	d := &logbook.DirDownloader{Dir: exportDir}
	opts = append(opts, logbook.WithAlerter(alerts), logbook.WithDownloader(d))
	lb := logbook.Open(repo, opts...)

	return App{
		book:       lb,
		store:      s,
		download:   d,
		activeView: viewLog,
		entries:    newEntriesModel(lb, s, alerts),
		reports:    newReportsModel(lb),
		settings:   newSettingsModel(s, exportDir),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.entries.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.entries.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewLog
			return a, a.entries.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.New) && a.activeView == viewReports:
			// Adding is always available; jump to the log with the form open.
			a.activeView = viewLog
		}

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case entryAddedMsg:
		a.status = fmt.Sprintf("Added %s (%s)", msg.entry.Org, formatHours(msg.entry.Hours))
		a.statusError = false
		return a, nil

	case entriesClearedMsg:
		a.status = "All entries cleared"
		a.statusError = false
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Data messages go to their owner regardless of the active tab.
	switch msg.(type) {
	case entriesDataMsg:
		a.entries, cmd = a.entries.update(msg)
		return a, cmd
	case reportsDataMsg:
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	case settingsDataMsg:
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	switch a.activeView {
	case viewLog:
		a.entries, cmd = a.entries.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewLog:
		return a.entries.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewLog:
		return a.entries.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewLog:
		content = a.entries.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("Volunteer Log")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = successStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d entries → %s", a.book.Len(), a.exportDir())))
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportDir() string {
	return a.store.ExportDir(a.settings.fallbackExportDir)
}

// doExport writes the file synchronously so it sees exactly the list on
// screen; only the result message is deferred.
func (a App) doExport(format int) tea.Cmd {
	a.download.Dir = a.exportDir()

	var err error
	if format == exportCSV {
		err = a.book.ExportCSV()
	} else {
		err = a.book.ExportJSON()
	}
	if err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
	}

	path := a.download.LastPath
	return func() tea.Msg { return exportDoneMsg{path: path} }
}
