package page

import (
	"context"
	"strings"

	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/validate"
)

type TaskListController struct {
	env    Env
	view   TaskListView
	filter model.TaskStatus
}

func NewTaskList(env Env, view TaskListView) *TaskListController {
	return &TaskListController{env: env, view: view}
}

// Load fetches the user's tasks (optionally filtered by status) and renders
// one row per task.
func (c *TaskListController) Load(ctx context.Context) error {
	if _, err := c.env.gate(false); err != nil {
		return err
	}

	var (
		tasks []model.Task
		err   error
	)
	if c.filter != "" {
		tasks, err = c.env.API.TasksByStatus(ctx, c.filter)
	} else {
		tasks, err = c.env.API.ListTasks(ctx)
	}
	if err != nil {
		return c.env.fail("list tasks", c.view, err, messages.ErrorFetchingTasks)
	}

	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, c.env.row(t))
	}
	c.view.SetTasks(rows)
	return nil
}

// Filter sets the status filter ("" clears it) and reloads.
func (c *TaskListController) Filter(ctx context.Context, status string) error {
	if strings.TrimSpace(status) == "" {
		c.filter = ""
		return c.Load(ctx)
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		msg := c.env.msg().T(messages.InvalidStatusFilter)
		c.view.Alert(msg)
		return &Error{Message: msg, Err: err}
	}
	c.filter = st
	return c.Load(ctx)
}

func (c *TaskListController) Status() model.TaskStatus { return c.filter }

// Select remembers id for the detail screen and opens it.
func (c *TaskListController) Select(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &Error{Message: "task id is empty"}
	}
	if err := c.env.Session.SelectTask(id); err != nil {
		return &Error{Message: "remember selected task: " + err.Error(), Err: err}
	}
	c.env.Nav.Navigate(TaskDetail)
	return nil
}

// Add opens the creation screen when logged in.
func (c *TaskListController) Add() error {
	if _, err := c.env.gate(false); err != nil {
		return err
	}
	c.env.Nav.Navigate(TaskCreate)
	return nil
}

func (e Env) row(t model.Task) TaskRow {
	m := e.msg()
	title := t.Title
	if strings.TrimSpace(title) == "" {
		title = m.T(messages.NoTitle)
	}
	desc := t.Description
	if strings.TrimSpace(desc) == "" {
		desc = m.T(messages.NoDescription)
	}
	return TaskRow{
		ID:          t.ID.String(),
		Title:       title,
		Description: desc,
		Status:      m.TData(messages.StatusLine, map[string]any{"Status": t.Status.Label()}),
		Deadline:    m.TData(messages.DeadlineLine, map[string]any{"Deadline": validate.FormatDateTime(t.Deadline.Time, e.locale())}),
		Task:        t,
		Code:        t.Status,
	}
}

func (e Env) locale() string {
	if e.Locale != "" {
		return e.Locale
	}
	return e.msg().Lang()
}
