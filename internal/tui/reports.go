package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gifnar/volunteerlog/internal/logbook"
)

// maxBars caps the chart; smaller organizations still appear in the table.
const maxBars = 8

type reportsModel struct {
	book   *logbook.Logbook
	width  int
	height int

	summary []logbook.OrgHours
	total   float64

	chart barchart.Model
}

func newReportsModel(lb *logbook.Logbook) reportsModel {
	return reportsModel{
		book:  lb,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	summary []logbook.OrgHours
	total   float64
}

func (r reportsModel) refresh() tea.Cmd {
	summary := r.book.Summary()
	total := r.book.TotalHours()
	return func() tea.Msg {
		return reportsDataMsg{summary: summary, total: total}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.summary = msg.summary
		r.total = msg.total
		r.buildChart()
		return r, nil
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, s := range r.summary {
		if i == maxBars {
			break
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(orgColors[i%len(orgColors)]))
		bars = append(bars, barchart.BarData{
			Label: truncate(s.Org, 10),
			Values: []barchart.BarValue{{
				Name:  s.Org,
				Value: s.Hours,
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Hours by Organization"), "  ",
		highlightStyle.Render(formatHours(r.total)+" total"),
	)

	if len(r.summary) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("  No data yet")),
		)
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderSummaryTable(w),
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-28s %10s %9s", "Organization", "Hours", "Sessions"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 49))))

	for i, s := range r.summary {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(orgColors[i%len(orgColors)])).Render("●")
		if i >= maxBars {
			dot = " "
		}
		rows = append(rows, fmt.Sprintf("  %s %-26s %10s %9d",
			dot, truncate(s.Org, 26), formatHours(s.Hours), s.Sessions,
		))
	}

	return strings.Join(rows, "\n")
}
