package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gifnar/volunteerlog/internal/entry"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLog viewState = iota
	viewReports
	viewSettings
)

var viewNames = []string{"Log", "Reports", "Settings"}

// --- Messages ---

type entryAddedMsg struct {
	entry entry.Entry
}

type entriesClearedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// alertQueue collects validation alerts raised by the logbook during an
// update so they can be shown in the status bar.
type alertQueue struct {
	msgs []string
}

func (q *alertQueue) Alert(msg string) {
	q.msgs = append(q.msgs, msg)
}

func (q *alertQueue) drain() tea.Cmd {
	if len(q.msgs) == 0 {
		return nil
	}
	text := q.msgs[len(q.msgs)-1]
	q.msgs = nil
	return func() tea.Msg {
		return statusMsg{text: text, isError: true}
	}
}

// --- Helpers ---

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
