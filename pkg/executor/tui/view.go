package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/backnav/pkg/backpress"
)

// View renders the TUI.
func (m *model) View() string {
	if m.quitting {
		return ""
	}

	main := m.renderPage()
	side := m.renderPanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side)

	sections := []string{
		m.renderHeader(),
		body,
		logStyle.Render(m.viewport.View()),
		m.renderStatus(),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) renderHeader() string {
	armed := disabledStyle.Render("○ idle")
	if m.manager.IsArmed() {
		armed = enabledStyle.Render("● armed")
	}

	parts := []string{
		headerStyle.Render("backnav"),
		armed,
		tipsStyle.Render("phase " + m.manager.GesturePhase().String()),
		tipsStyle.Render("edge " + m.edge.String()),
		tipsStyle.Render(callbackName(m.callback)),
	}
	if t, ok := m.manager.ActiveType(); ok {
		parts = append(parts, pinnedStyle.Render("pinned "+t.String()))
	}
	return strings.Join(parts, tipsStyle.Render("  ·  "))
}

func (m *model) renderPage() string {
	b := m.browser

	var lines []string
	lines = append(lines, pageStyle.Render("tab: "+b.currentPage()))
	lines = append(lines, tipsStyle.Render(fmt.Sprintf("history: %s", strings.Join(b.pages, " › "))))

	for _, f := range []*feature{b.fullscreen, b.find, b.sheet, b.bubble} {
		if !f.open() {
			continue
		}
		label := f.name
		if f == b.sheet && b.sheetLock {
			label += " (locked)"
		}
		if f.previewing {
			label += "  " + m.progress.ViewAs(f.preview)
		}
		lines = append(lines, featureStyle.Render(label))
	}

	width := max(30, m.width*2/3-4)
	return paneStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *model) renderPanel() string {
	var content string
	switch m.panel {
	case panelRecords:
		content = m.renderRecords()
	case panelConfig:
		content = highlightYAML(configYAML(m.arbiter, m.keysCfg))
	default:
		content = m.renderRegistry()
	}

	title := headerStyle.Render(m.panel.String())
	width := max(24, m.width/3-4)
	return paneStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m *model) renderRegistry() string {
	active, pinned := m.manager.ActiveType()

	var rows []string
	for _, t := range backpress.Types() {
		h, ok := m.manager.Handler(t)
		if !ok {
			continue
		}
		state := h.EnabledState().Get()
		style := disabledStyle
		switch state {
		case backpress.True:
			style = enabledStyle
		case backpress.Unknown:
			style = unknownStyle
		}
		row := style.Render(fmt.Sprintf("%-26s %s", t, state))
		if pinned && t == active {
			row += pinnedStyle.Render(" ◀")
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func (m *model) renderRecords() string {
	successes, failures := m.tally.Totals()
	lines := []string{
		enabledStyle.Render(fmt.Sprintf("successes %d", successes)),
		unknownStyle.Render(fmt.Sprintf("failures  %d", failures)),
	}
	for _, r := range m.tally.Since(m.tally.Len() - 8) {
		lines = append(lines, tipsStyle.Render(r.String()))
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	return statusBarStyle.Render(m.status)
}
