package tui

import (
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/validate"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type taskItem struct {
	row page.TaskRow
}

func (i taskItem) Title() string       { return i.row.Title }
func (i taskItem) FilterValue() string { return i.row.Title + " " + i.row.Description }

// Description is the second list line: status, deadline and how far off
// the deadline is.
func (i taskItem) Description() string {
	d := i.row.Status + "  " + i.row.Deadline
	if rel := validate.Relative(i.row.Task.Deadline.Time); rel != "" {
		d += " (" + rel + ")"
	}
	return d
}

func taskItems(rows []page.TaskRow) []list.Item {
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, taskItem{row: r})
	}
	return items
}

func statusColor(s model.TaskStatus) lipgloss.TerminalColor {
	switch s {
	case model.StatusInProgress:
		return colorInProgress
	case model.StatusCompleted:
		return colorCompleted
	case model.StatusTimeExceeded:
		return colorTimeExceeded
	default:
		return colorPending
	}
}

func newList(title string, items []list.Item) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorAccent).BorderForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorAccent).BorderForeground(colorAccent)

	l := list.New(items, d, 0, 0)
	l.Title = title
	// Header and footer are ours, so keep the list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	// Esc means "back" here, not quit.
	l.KeyMap.Quit.SetKeys("q")

	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

// nextFilter cycles all -> pending -> ... -> time exceeded -> all.
func nextFilter(cur string) string {
	all := model.Statuses()
	if cur == "" {
		return string(all[0])
	}
	for i, s := range all {
		if string(s) == cur && i+1 < len(all) {
			return string(all[i+1])
		}
	}
	return ""
}
