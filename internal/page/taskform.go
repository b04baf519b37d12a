package page

import (
	"context"
	"strconv"
	"strings"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/validate"
)

// readForm validates the task form. Errors have already been shown.
func (e Env) readForm(v TaskFormView) (model.TaskInput, error) {
	m := e.msg()
	v.SetError("")

	title := strings.TrimSpace(v.Title())
	desc := strings.TrimSpace(v.Description())
	deadline := strings.TrimSpace(v.Deadline())
	if _, ok := validate.Required(
		validate.Field{Name: "title", Value: title},
		validate.Field{Name: "description", Value: desc},
		validate.Field{Name: "deadline", Value: deadline},
	); !ok {
		return model.TaskInput{}, inline(v.SetError, m.T(messages.AllFieldsRequired), nil)
	}

	dl, err := validate.DeadlineFromInput(deadline)
	if err != nil {
		return model.TaskInput{}, inline(v.SetError, m.T(messages.DeadlineInvalid), err)
	}
	in := model.TaskInput{Title: title, Description: desc, Deadline: dl}

	if raw := strings.TrimSpace(v.EstimatedTime()); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return model.TaskInput{}, inline(v.SetError, m.T(messages.EstimateInvalid), err)
		}
		in.EstimatedTime = &n
	}
	return in, nil
}

type TaskCreateController struct {
	env  Env
	view TaskFormView
}

func NewTaskCreate(env Env, view TaskFormView) *TaskCreateController {
	return &TaskCreateController{env: env, view: view}
}

// Submit creates the task and opens the list.
func (c *TaskCreateController) Submit(ctx context.Context) error {
	if _, err := c.env.gate(false); err != nil {
		return err
	}
	in, err := c.env.readForm(c.view)
	if err != nil {
		return err
	}
	if _, err := c.env.API.CreateTask(ctx, in); err != nil {
		return c.env.fail("create task", c.view, err, messages.ErrorCreatingTask)
	}
	c.env.Nav.Navigate(TaskList)
	return nil
}

func (c *TaskCreateController) Cancel() {
	c.env.Nav.Navigate(TaskList)
}

type TaskEditController struct {
	env  Env
	view TaskFormView
}

func NewTaskEdit(env Env, view TaskFormView) *TaskEditController {
	return &TaskEditController{env: env, view: view}
}

// Load fetches the selected task and prefills the form.
func (c *TaskEditController) Load(ctx context.Context) error {
	g, err := c.env.gate(true)
	if err != nil {
		return err
	}
	t, err := c.env.API.GetTask(ctx, g.TaskID)
	if err != nil {
		if api.KindOf(err) == api.KindNotFound {
			return inline(c.view.SetError, c.env.msg().T(messages.TaskNotFound), err)
		}
		return c.env.fail("get task", c.view, err, messages.ErrorFetchingTask)
	}
	v := FormValues{
		Title:       t.Title,
		Description: t.Description,
		Deadline:    validate.DeadlineToInput(t.Deadline),
	}
	if t.EstimatedTime != nil && *t.EstimatedTime > 0 {
		v.EstimatedTime = strconv.FormatInt(*t.EstimatedTime, 10)
	}
	c.view.SetValues(v)
	return nil
}

// Submit saves the form over the selected task and opens the list.
func (c *TaskEditController) Submit(ctx context.Context) error {
	g, err := c.env.gate(true)
	if err != nil {
		return err
	}
	in, err := c.env.readForm(c.view)
	if err != nil {
		return err
	}
	if _, err := c.env.API.UpdateTask(ctx, g.TaskID, in); err != nil {
		if api.KindOf(err) == api.KindNotFound {
			return inline(c.view.SetError, c.env.msg().T(messages.TaskNotFound), err)
		}
		return c.env.fail("edit task", c.view, err, messages.ErrorEditingTask)
	}
	c.env.Nav.Navigate(TaskList)
	return nil
}

func (c *TaskEditController) Cancel() {
	c.env.Nav.Navigate(TaskDetail)
}
