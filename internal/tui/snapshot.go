package tui

import (
	"context"

	"taskvvts-cli/internal/page"

	tea "github.com/charmbracelet/bubbletea"
)

// snapshot is the view a controller writes into while it runs inside a
// tea.Cmd. Form input is copied in before the command starts and the
// result is applied by Update, so the model is never touched off the UI
// goroutine.
type snapshot struct {
	form map[string]string

	alerts    []string
	cleared   bool
	fieldErrs map[string]string
	formErr   *string
	message   *string
	rows      []page.TaskRow
	gotRows   bool
	card      *page.TaskCard
	values    *page.FormValues
}

func (s *snapshot) Username() string      { return s.form[keyUsername] }
func (s *snapshot) Password() string      { return s.form[keyPassword] }
func (s *snapshot) Name() string          { return s.form[keyName] }
func (s *snapshot) LastName() string      { return s.form[keyLastName] }
func (s *snapshot) Email() string         { return s.form[keyEmail] }
func (s *snapshot) Title() string         { return s.form[keyTitle] }
func (s *snapshot) Description() string   { return s.form[keyDescription] }
func (s *snapshot) Deadline() string      { return s.form[keyDeadline] }
func (s *snapshot) EstimatedTime() string { return s.form[keyEstimate] }

func (s *snapshot) Alert(msg string) { s.alerts = append(s.alerts, msg) }

func (s *snapshot) ClearErrors() {
	s.cleared = true
	s.fieldErrs = nil
	empty := ""
	s.formErr = &empty
}

func (s *snapshot) SetFieldError(field, msg string) {
	if s.fieldErrs == nil {
		s.fieldErrs = map[string]string{}
	}
	s.fieldErrs[field] = msg
}

func (s *snapshot) SetFormError(msg string) { s.formErr = &msg }
func (s *snapshot) SetError(msg string)     { s.formErr = &msg }
func (s *snapshot) SetMessage(msg string)   { s.message = &msg }

func (s *snapshot) SetTasks(rows []page.TaskRow) {
	s.rows = rows
	s.gotRows = true
}

func (s *snapshot) SetTask(card page.TaskCard)       { s.card = &card }
func (s *snapshot) SetValues(values page.FormValues) { s.values = &values }

// navRec records navigation requests; the last Navigate wins.
type navRec struct {
	next    page.Page
	reloads int
}

func (n *navRec) Navigate(to page.Page) { n.next = to }
func (n *navRec) Reload()               { n.reloads++ }

type controllerFunc func(ctx context.Context, env page.Env, v *snapshot) error

// run starts fn as a command and marks the model busy until its doneMsg
// arrives.
func (m *appModel) run(op string, fn controllerFunc) tea.Cmd {
	snap := &snapshot{form: m.formValues()}
	nav := &navRec{}
	env := m.env
	env.Nav = nav
	ctx := m.ctx

	m.busy = true
	m.op = op
	call := func() tea.Msg {
		err := fn(ctx, env, snap)
		return doneMsg{op: op, snap: snap, nav: nav, err: err}
	}
	return tea.Batch(call, m.spinner.Tick)
}
