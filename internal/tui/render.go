package tui

import (
	"strings"

	"taskvvts-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewTasks:
		body = m.viewTasks()
	case viewTask:
		body = m.viewTask()
	default:
		body = m.renderForm()
	}

	pad := lipgloss.NewStyle().PaddingLeft(1)
	return lipgloss.JoinVertical(lipgloss.Left,
		pad.Render(m.header()),
		"",
		pad.Render(body),
		"",
		pad.Render(m.footer()),
	)
}

func (m appModel) header() string {
	h := styleBrand().Render("taskvvts") + styleMuted().Render(" > ") + styleTitle().Render(m.view.crumb())
	if m.view == viewTasks && m.filter != "" {
		h += styleMuted().Render("  status: " + model.TaskStatus(m.filter).Label())
	}
	if m.busy {
		h += "  " + m.spinner.View()
	}
	return h
}

func (m appModel) viewTasks() string {
	if len(m.list.Items()) == 0 && !m.busy {
		return styleMuted().Render("No tasks yet. Press a to add one.")
	}
	return m.list.View()
}

func (m appModel) viewTask() string {
	if m.card == nil {
		if m.message != "" {
			return styleNotice().Render(m.message)
		}
		return styleMuted().Render("Loading…")
	}
	c := m.card
	w := m.width - 4
	if w < 20 {
		w = 20
	}

	lines := []string{
		styleTitle().Render(xansi.Truncate(c.Title, w, "…")) + " " + styleMuted().Render("#"+c.ID),
		"",
		lipgloss.NewStyle().Width(w).Render(c.Description),
		"",
		lipgloss.NewStyle().Foreground(statusColor(c.Task.Status)).Render(c.Status),
		c.Deadline,
	}
	for _, d := range c.Details {
		lines = append(lines, styleMuted().Render(d))
	}
	if c.Suggestion != "" {
		lines = append(lines, "", renderMarkdown(c.Suggestion, w))
	}
	if m.message != "" {
		lines = append(lines, "", styleNotice().Render(m.message))
	}
	if m.confirmDelete {
		lines = append(lines, "", styleError().Render("Delete this task? y to confirm, any other key to cancel."))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) footer() string {
	var lines []string
	if m.alert != "" {
		lines = append(lines, styleError().Render(m.alert))
	}
	lines = append(lines, styleMuted().Render(m.keyHelp()))
	return strings.Join(lines, "\n")
}

func (m appModel) keyHelp() string {
	switch m.view {
	case viewLogin:
		return "tab next field · enter log in · ctrl+r register · ctrl+c quit"
	case viewRegister:
		return "tab next field · enter register · esc back to login · ctrl+c quit"
	case viewCreate, viewEdit:
		return "tab next field · ctrl+s save · esc cancel · ctrl+c quit"
	case viewTasks:
		return "enter open · a add · s status filter · / search · r reload · L log out · q quit"
	case viewTask:
		return "i clock in · o clock out · c complete · t time spent · x check time · e edit · d delete · esc back"
	}
	return ""
}
