package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"taskvvts-cli/internal/model"
)

// Login authenticates and returns the bearer token. It does not store it;
// that is the login screen's job.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var out model.LoginResponse
	err := c.do(ctx, request{op: "login", method: http.MethodPost, path: "/authenticate", body: creds}, &out)
	if err != nil {
		return "", err
	}
	tok := strings.TrimSpace(out.Token)
	if tok == "" {
		return "", &Error{Op: "login", Kind: KindServer, Err: errors.New("response has no token")}
	}
	return tok, nil
}

// Register creates an account. 400 and 409 both mean the account exists.
func (c *Client) Register(ctx context.Context, p model.Profile) error {
	err := c.do(ctx, request{op: "register", method: http.MethodPost, path: "/register", body: p}, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindBadRequest {
		apiErr.Kind = KindConflict
	}
	return err
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	raw, err := c.send(ctx, request{op: "list tasks", method: http.MethodGet, path: "/task/get-all", auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Task]("list tasks", raw)
}

func (c *Client) TasksByStatus(ctx context.Context, status model.TaskStatus) ([]model.Task, error) {
	path := "/task/get-by-status?status=" + url.QueryEscape(string(status))
	raw, err := c.send(ctx, request{op: "filter tasks", method: http.MethodGet, path: path, auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Task]("filter tasks", raw)
}

func (c *Client) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, request{op: "get task", method: http.MethodGet, path: taskPath("get", id), auth: true}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = model.TaskID(id)
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, request{op: "create task", method: http.MethodPost, path: "/task/create", auth: true, body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in model.TaskInput) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, request{op: "edit task", method: http.MethodPut, path: taskPath("edit", id), auth: true, body: in}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = model.TaskID(id)
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, request{op: "delete task", method: http.MethodDelete, path: taskPath("delete", id), auth: true}, nil)
}

// ClockIn moves a Pending task to In Progress (403 otherwise).
func (c *Client) ClockIn(ctx context.Context, id string) error {
	return c.do(ctx, request{op: "clock in", method: http.MethodPut, path: taskPath("clock-in", id), auth: true}, nil)
}

// ClockOut finishes an In Progress task and records the time spent (403 otherwise).
func (c *Client) ClockOut(ctx context.Context, id string) error {
	return c.do(ctx, request{op: "clock out", method: http.MethodPut, path: taskPath("clock-out", id), auth: true}, nil)
}

// MarkComplete moves an In Progress task to Completed (403 otherwise).
func (c *Client) MarkComplete(ctx context.Context, id string) error {
	return c.do(ctx, request{op: "mark complete", method: http.MethodPut, path: taskPath("mark-completed", id), auth: true}, nil)
}

// SpentTime returns the minutes recorded for a task.
func (c *Client) SpentTime(ctx context.Context, id string) (int64, error) {
	var out model.StatusBody[int64]
	if err := c.do(ctx, request{op: "spent time", method: http.MethodGet, path: taskPath("spent-time", id), auth: true}, &out); err != nil {
		return 0, err
	}
	return out.Status, nil
}

// CheckTimeExceeded asks the server to re-evaluate an In Progress task
// against its estimate.
func (c *Client) CheckTimeExceeded(ctx context.Context, id string) (bool, error) {
	var out model.StatusBody[bool]
	if err := c.do(ctx, request{op: "check time", method: http.MethodGet, path: taskPath("check-time-exceeded", id), auth: true}, &out); err != nil {
		return false, err
	}
	return out.Status, nil
}

// NotifyTimeExceeded is CheckTimeExceeded returning the server's notice text.
func (c *Client) NotifyTimeExceeded(ctx context.Context, id string) (string, error) {
	var out model.StatusBody[string]
	if err := c.do(ctx, request{op: "notify time", method: http.MethodGet, path: taskPath("notify-time-exceeded", id), auth: true}, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func taskPath(action, id string) string {
	return "/task/" + action + "/" + url.PathEscape(strings.TrimSpace(id))
}
