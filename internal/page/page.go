// Package page holds one controller per screen. Controllers read typed views,
// call the API and move between screens through a Navigator; the CLI and the
// TUI only supply views and navigators.
package page

import (
	"context"
	"errors"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/session"

	"go.uber.org/zap"
)

type Page int

const (
	None Page = iota
	Login
	Register
	TaskList
	TaskDetail
	TaskCreate
	TaskEdit
)

func (p Page) String() string {
	switch p {
	case Login:
		return "login"
	case Register:
		return "register"
	case TaskList:
		return "tasks"
	case TaskDetail:
		return "task"
	case TaskCreate:
		return "create-task"
	case TaskEdit:
		return "edit-task"
	default:
		return ""
	}
}

// Navigator switches screens. Navigate replaces the current screen; Reload
// re-runs the current screen's load step.
type Navigator interface {
	Navigate(to Page)
	Reload()
}

// API is the part of *api.Client the controllers use.
type API interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Register(ctx context.Context, p model.Profile) error
	ListTasks(ctx context.Context) ([]model.Task, error)
	TasksByStatus(ctx context.Context, status model.TaskStatus) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, in model.TaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ClockIn(ctx context.Context, id string) error
	ClockOut(ctx context.Context, id string) error
	MarkComplete(ctx context.Context, id string) error
	SpentTime(ctx context.Context, id string) (int64, error)
	NotifyTimeExceeded(ctx context.Context, id string) (string, error)
}

var _ API = (*api.Client)(nil)

// Env is what every controller is built from.
type Env struct {
	Session session.Session
	API     API
	Nav     Navigator
	Msg     *messages.Catalog
	Locale  string
	Log     *zap.Logger

	// ClearOnUnauthorized drops the stored token when the API answers 401.
	ClearOnUnauthorized bool
}

func (e Env) msg() *messages.Catalog {
	if e.Msg == nil {
		return messages.English()
	}
	return e.Msg
}

func (e Env) log() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Error is returned by controllers after the outcome was shown on the view.
// Next is the screen the controller navigated to, if any.
type Error struct {
	Message string
	Next    Page
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "failed"
}

func (e *Error) Unwrap() error { return e.Err }

// NextOf reports where a failed controller call navigated.
func NextOf(err error) Page {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Next
	}
	return None
}

type alerter interface {
	Alert(msg string)
}

// gate runs the session check and redirects on failure. Nothing has been
// sent when it returns an error.
func (e Env) gate(needTask bool) (session.Grant, error) {
	g, err := session.Gate(e.Session, needTask)
	switch {
	case err == nil:
		return g, nil
	case errors.Is(err, session.ErrNoSelectedTask):
		e.Nav.Navigate(TaskList)
		return g, &Error{Next: TaskList, Err: err}
	default:
		e.Nav.Navigate(Login)
		return g, &Error{Next: Login, Err: err}
	}
}

// unauthorized handles a 401 (or a token that vanished mid-call).
func (e Env) unauthorized(op string, err error) error {
	if e.ClearOnUnauthorized {
		if cerr := e.Session.ClearToken(); cerr != nil {
			e.log().Warn("clear token", zap.Error(cerr))
		}
	}
	e.log().Info("session rejected", zap.String("op", op), zap.Error(err))
	e.Nav.Navigate(Login)
	return &Error{Next: Login, Err: err}
}

// fail is the shared tail of every API error branch: 401 goes to login,
// everything else becomes an alert with the screen's generic message.
func (e Env) fail(op string, v alerter, err error, fallbackID string) error {
	switch api.KindOf(err) {
	case api.KindUnauthorized, api.KindNoSession:
		return e.unauthorized(op, err)
	}
	e.log().Warn(op+" failed", zap.Stringer("kind", api.KindOf(err)), zap.Error(err))
	msg := e.msg().T(fallbackID)
	v.Alert(msg)
	return &Error{Message: msg, Err: err}
}

// inline reports a recoverable error next to the form instead of alerting.
func inline(set func(string), msg string, err error) error {
	set(msg)
	return &Error{Message: msg, Err: err}
}
