package tui

import (
	"context"

	"taskvvts-cli/internal/page"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case doneMsg:
		cmd := m.apply(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		m.alert = ""
		switch {
		case m.view.isForm():
			return m.updateForm(msg)
		case m.view == viewTasks:
			return m.updateTasks(msg)
		case m.view == viewTask:
			return m.updateTask(msg)
		}
	}

	return m.forward(msg)
}

// forward hands other messages (cursor blink, list filter ticks) to the
// active component.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view.isForm() && len(m.inputs) > 0:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case m.view == viewTasks:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focusField(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusField(m.focus - 1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.focusField(m.focus + 1)
			return m, nil
		}
		return m, m.submit()
	case "ctrl+s":
		return m, m.submit()
	case "esc":
		return m, m.cancelForm()
	case "ctrl+r":
		if m.view == viewLogin {
			return m, m.run("go register", func(_ context.Context, env page.Env, v *snapshot) error {
				page.NewLogin(env, v).GoRegister()
				return nil
			})
		}
	}
	return m.forward(msg)
}

func (m *appModel) submit() tea.Cmd {
	switch m.view {
	case viewLogin:
		return m.run("login", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewLogin(env, v).Submit(ctx)
		})
	case viewRegister:
		return m.run("register", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewRegister(env, v).Submit(ctx)
		})
	case viewCreate:
		return m.run("create task", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskCreate(env, v).Submit(ctx)
		})
	case viewEdit:
		return m.run("edit task", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskEdit(env, v).Submit(ctx)
		})
	}
	return nil
}

func (m *appModel) cancelForm() tea.Cmd {
	switch m.view {
	case viewRegister:
		return m.run("go login", func(_ context.Context, env page.Env, v *snapshot) error {
			page.NewRegister(env, v).GoLogin()
			return nil
		})
	case viewCreate:
		return m.run("cancel create", func(_ context.Context, env page.Env, v *snapshot) error {
			page.NewTaskCreate(env, v).Cancel()
			return nil
		})
	case viewEdit:
		return m.run("cancel edit", func(_ context.Context, env page.Env, v *snapshot) error {
			page.NewTaskEdit(env, v).Cancel()
			return nil
		})
	}
	return nil
}

func (m appModel) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's own filter prompt is open every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		return m.forward(msg)
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, m.run("select task", func(_ context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskList(env, v).Select(row.ID)
		})
	case "a", "n":
		return m, m.run("add task", func(_ context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskList(env, v).Add()
		})
	case "s":
		m.filter = nextFilter(m.filter)
		return m, m.load()
	case "r":
		return m, m.load()
	case "L":
		return m, m.logout()
	}
	return m.forward(msg)
}

func (m *appModel) logout() tea.Cmd {
	if err := m.env.Session.ClearToken(); err != nil {
		m.alert = err.Error()
		return nil
	}
	if err := m.env.Session.ClearSelectedTask(); err != nil {
		m.alert = err.Error()
		return nil
	}
	m.list.SetItems(nil)
	m.filter = ""
	return m.enter(viewLogin)
}

func (m appModel) updateTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() != "y" {
			return m, nil
		}
		return m, m.detail("delete task", (*page.TaskDetailController).Delete)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "h":
		return m, m.detail("back", func(c *page.TaskDetailController, _ context.Context) error {
			c.Back()
			return nil
		})
	case "r":
		return m, m.load()
	case "i":
		return m, m.detail("clock in", (*page.TaskDetailController).ClockIn)
	case "o":
		return m, m.detail("clock out", (*page.TaskDetailController).ClockOut)
	case "c":
		return m, m.detail("complete", (*page.TaskDetailController).MarkComplete)
	case "x":
		return m, m.detail("check time", (*page.TaskDetailController).CheckTime)
	case "t":
		return m, m.detail("spent time", func(c *page.TaskDetailController, ctx context.Context) error {
			_, err := c.SpentTime(ctx)
			return err
		})
	case "e":
		return m, m.detail("edit", func(c *page.TaskDetailController, _ context.Context) error {
			return c.Edit()
		})
	case "d":
		m.confirmDelete = true
		return m, nil
	}
	return m, nil
}

func (m *appModel) detail(op string, fn func(*page.TaskDetailController, context.Context) error) tea.Cmd {
	return m.run(op, func(ctx context.Context, env page.Env, v *snapshot) error {
		return fn(page.NewTaskDetail(env, v), ctx)
	})
}
