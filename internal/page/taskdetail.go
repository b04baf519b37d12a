package page

import (
	"context"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/validate"

	"go.uber.org/zap"
)

type TaskDetailController struct {
	env  Env
	view TaskDetailView
}

func NewTaskDetail(env Env, view TaskDetailView) *TaskDetailController {
	return &TaskDetailController{env: env, view: view}
}

// Load re-fetches the selected task; nothing is taken from the list.
func (c *TaskDetailController) Load(ctx context.Context) error {
	g, err := c.env.gate(true)
	if err != nil {
		return err
	}
	t, err := c.env.API.GetTask(ctx, g.TaskID)
	if err != nil {
		if api.KindOf(err) == api.KindNotFound {
			msg := c.env.msg().T(messages.TaskNotFound)
			c.view.Alert(msg)
			return &Error{Message: msg, Err: err}
		}
		return c.env.fail("get task", c.view, err, messages.ErrorFetchingTask)
	}
	c.view.SetTask(c.env.card(*t))
	return nil
}

func (c *TaskDetailController) ClockIn(ctx context.Context) error {
	return c.transition(ctx, "clock in", c.env.API.ClockIn, messages.ClockInRequiresPending)
}

func (c *TaskDetailController) ClockOut(ctx context.Context) error {
	return c.transition(ctx, "clock out", c.env.API.ClockOut, messages.ClockOutRequiresInProgress)
}

func (c *TaskDetailController) MarkComplete(ctx context.Context) error {
	return c.transition(ctx, "mark complete", c.env.API.MarkComplete, messages.CompleteRequiresInProgress)
}

// transition runs a state change. A 403 names the required prior status
// and stays on the screen; success reloads it.
func (c *TaskDetailController) transition(ctx context.Context, op string, call func(context.Context, string) error, forbiddenID string) error {
	g, err := c.env.gate(true)
	if err != nil {
		return err
	}
	c.view.SetMessage("")
	if err := call(ctx, g.TaskID); err != nil {
		if api.KindOf(err) == api.KindForbidden {
			return inline(c.view.SetMessage, c.env.msg().T(forbiddenID), err)
		}
		return c.env.fail(op, c.view, err, messages.ErrorUpdatingTask)
	}
	c.env.Nav.Reload()
	return nil
}

// Delete removes the task and returns to the list.
func (c *TaskDetailController) Delete(ctx context.Context) error {
	g, err := c.env.gate(true)
	if err != nil {
		return err
	}
	if err := c.env.API.DeleteTask(ctx, g.TaskID); err != nil {
		if api.KindOf(err) == api.KindNotFound {
			return inline(c.view.SetMessage, c.env.msg().T(messages.TaskNotFound), err)
		}
		return c.env.fail("delete task", c.view, err, messages.ErrorDeletingTask)
	}
	if err := c.env.Session.ClearSelectedTask(); err != nil {
		c.env.log().Warn("clear selected task", zap.Error(err))
	}
	c.env.Nav.Navigate(TaskList)
	return nil
}

// CheckTime asks the server whether the task ran over its estimate, shows
// the server's notice and reloads (the check may change the status).
func (c *TaskDetailController) CheckTime(ctx context.Context) error {
	g, err := c.env.gate(true)
	if err != nil {
		return err
	}
	notice, err := c.env.API.NotifyTimeExceeded(ctx, g.TaskID)
	if err != nil {
		return c.env.fail("check time", c.view, err, messages.ErrorCheckingTime)
	}
	c.view.SetMessage(notice)
	c.env.Nav.Reload()
	return nil
}

// SpentTime shows the minutes recorded for the task.
func (c *TaskDetailController) SpentTime(ctx context.Context) (int64, error) {
	g, err := c.env.gate(true)
	if err != nil {
		return 0, err
	}
	n, err := c.env.API.SpentTime(ctx, g.TaskID)
	if err != nil {
		return 0, c.env.fail("spent time", c.view, err, messages.ErrorFetchingTask)
	}
	c.view.SetMessage(c.env.msg().TData(messages.TimeSpentLine, map[string]any{"Value": validate.HumanizeMinutes(n)}))
	return n, nil
}

func (c *TaskDetailController) Edit() error {
	if _, err := c.env.gate(true); err != nil {
		return err
	}
	c.env.Nav.Navigate(TaskEdit)
	return nil
}

func (c *TaskDetailController) Back() {
	c.env.Nav.Navigate(TaskList)
}

// card renders a task. Optional fields appear only when present and non-zero.
func (e Env) card(t model.Task) TaskCard {
	m := e.msg()
	row := e.row(t)
	card := TaskCard{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      row.Status,
		Deadline:    row.Deadline,
		Task:        t,
	}
	line := func(id, value string) {
		card.Details = append(card.Details, m.TData(id, map[string]any{"Value": value}))
	}
	if t.EstimatedTime != nil && *t.EstimatedTime > 0 {
		line(messages.EstimatedTimeLine, validate.HumanizeMinutes(*t.EstimatedTime))
	}
	if t.TimeSpent != nil && *t.TimeSpent > 0 {
		line(messages.TimeSpentLine, validate.HumanizeMinutes(*t.TimeSpent))
	}
	if t.StartTime != nil && !t.StartTime.IsZero() {
		line(messages.StartTimeLine, validate.FormatDateTime(t.StartTime.Time, e.locale()))
	}
	if t.FinishTime != nil && !t.FinishTime.IsZero() {
		line(messages.FinishTimeLine, validate.FormatDateTime(t.FinishTime.Time, e.locale()))
	}
	if t.Suggestion != nil && *t.Suggestion != "" {
		card.Suggestion = *t.Suggestion
		line(messages.SuggestionLine, *t.Suggestion)
	}
	return card
}
