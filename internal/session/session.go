// Package session holds the two client-side slots every screen depends on:
// the durable bearer token and the session-scoped selected task id.
package session

import (
	"errors"
	"strings"
	"sync"
)

var (
	// ErrNoToken means the user must log in before doing protected work.
	ErrNoToken = errors.New("not logged in")
	// ErrNoSelectedTask means a task-scoped screen was opened without a selection.
	ErrNoSelectedTask = errors.New("no task selected")
)

// Session is the injected session context. Reads never fail: a slot that
// cannot be read is reported as absent.
type Session interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error

	SelectedTaskID() (string, bool)
	SelectTask(id string) error
	ClearSelectedTask() error
}

// Grant is what a passed Gate hands to the caller.
type Grant struct {
	Token  string
	TaskID string
}

// Gate checks the session synchronously. It must run before any request is
// issued. The token is checked first, so a missing token wins over a missing
// selection.
func Gate(s Session, needTask bool) (Grant, error) {
	tok, ok := s.Token()
	if !ok {
		return Grant{}, ErrNoToken
	}
	g := Grant{Token: tok}
	if !needTask {
		return g, nil
	}
	id, ok := s.SelectedTaskID()
	if !ok {
		return Grant{}, ErrNoSelectedTask
	}
	g.TaskID = id
	return g, nil
}

// Memory is an in-process Session.
type Memory struct {
	mu     sync.Mutex
	token  string
	taskID string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = strings.TrimSpace(token)
	return nil
}

func (m *Memory) ClearToken() error { return m.SetToken("") }

func (m *Memory) SelectedTaskID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taskID, m.taskID != ""
}

func (m *Memory) SelectTask(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taskID = strings.TrimSpace(id)
	return nil
}

func (m *Memory) ClearSelectedTask() error { return m.SelectTask("") }
