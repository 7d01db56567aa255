package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/gifnar/volunteerlog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	// Used for display when export_dir is blank.
	fallbackExportDir string

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	defaultHours *string
	exportDir    *string
}

func newSettingsModel(s *store.Store, fallbackExportDir string) settingsModel {
	dh, ed := "", ""
	return settingsModel{
		store:             s,
		fallbackExportDir: fallbackExportDir,
		defaultHours:      &dh,
		exportDir:         &ed,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	settings, _ := s.store.GetAllSettings()
	return func() tea.Msg {
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.defaultHours = s.store.DefaultHours()
	*s.exportDir = s.getVal(store.SettingExportDir, "")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default hours for a new entry").
				Validate(validateHours).
				Value(s.defaultHours),
			huh.NewInput().Title("Export directory").
				Description("Leave blank for "+s.fallbackExportDir).
				Value(s.exportDir),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
			}
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	if err := s.store.SetSetting(store.SettingDefaultHours, strings.TrimSpace(*s.defaultHours)); err != nil {
		return err
	}
	return s.store.SetSetting(store.SettingExportDir, strings.TrimSpace(*s.exportDir))
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(s.formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) formatSettingValue(k, v string) string {
	switch k {
	case store.SettingDefaultHours:
		if h, err := strconv.ParseFloat(v, 64); err == nil {
			return formatHours(h)
		}
	case store.SettingExportDir:
		if v == "" {
			return s.fallbackExportDir + " (default)"
		}
	}
	return v
}

// validateHours mirrors the rule applied to new entries: the value must be a
// number greater than zero.
func validateHours(v string) error {
	h, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || h <= 0 {
		return errors.New("enter a number greater than 0")
	}
	return nil
}
