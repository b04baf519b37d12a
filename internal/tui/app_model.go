package tui

import (
	"context"

	"taskvvts-cli/internal/page"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type appModel struct {
	ctx context.Context
	env page.Env
	log *zap.Logger

	view   view
	width  int
	height int

	// busy is set while a controller call is in flight; keys other than
	// quit are ignored until its doneMsg arrives.
	busy    bool
	op      string
	spinner spinner.Model
	start   tea.Cmd

	fields []formField
	inputs []textinput.Model
	focus  int

	list   list.Model
	filter string

	card          *page.TaskCard
	confirmDelete bool

	alert     string
	fieldErrs map[string]string
	formErr   string
	message   string
}

func newAppModel(ctx context.Context, env page.Env) appModel {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleBrand()

	m := appModel{
		ctx:     ctx,
		env:     env,
		log:     log.Named("tui"),
		width:   80,
		height:  24,
		spinner: sp,
		list:    newList("Tasks", nil),
	}
	first := viewLogin
	if _, ok := env.Session.Token(); ok {
		first = viewTasks
	}
	m.start = m.enter(first)
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.start)
}

// enter switches screens and starts the screen's load step, if it has one.
func (m *appModel) enter(v view) tea.Cmd {
	m.log.Debug("enter", zap.String("view", v.crumb()))
	m.view = v
	m.message = ""
	m.formErr = ""
	m.fieldErrs = nil
	m.confirmDelete = false

	switch v {
	case viewLogin:
		m.setForm(loginFields)
	case viewRegister:
		m.setForm(registerFields)
	case viewCreate, viewEdit:
		m.setForm(taskFields)
	case viewTask:
		m.card = nil
		m.setForm(nil)
	default:
		m.setForm(nil)
	}
	return m.load()
}

func (m *appModel) load() tea.Cmd {
	switch m.view {
	case viewTasks:
		filter := m.filter
		return m.run("load tasks", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskList(env, v).Filter(ctx, filter)
		})
	case viewTask:
		return m.run("load task", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskDetail(env, v).Load(ctx)
		})
	case viewEdit:
		return m.run("load form", func(ctx context.Context, env page.Env, v *snapshot) error {
			return page.NewTaskEdit(env, v).Load(ctx)
		})
	}
	return nil
}

// apply copies what a controller showed onto the model, then follows its
// navigation.
func (m *appModel) apply(msg doneMsg) tea.Cmd {
	m.busy = false
	m.op = ""
	if msg.err != nil {
		m.log.Debug("controller failed", zap.String("op", msg.op), zap.Error(msg.err))
	}

	s := msg.snap
	if n := len(s.alerts); n > 0 {
		m.alert = s.alerts[n-1]
	}
	if s.cleared {
		m.fieldErrs = nil
	}
	for k, v := range s.fieldErrs {
		if m.fieldErrs == nil {
			m.fieldErrs = map[string]string{}
		}
		m.fieldErrs[k] = v
	}
	if s.formErr != nil {
		m.formErr = *s.formErr
	}
	if s.message != nil {
		m.message = *s.message
	}
	if s.gotRows {
		m.list.SetItems(taskItems(s.rows))
	}
	if s.card != nil {
		m.card = s.card
	}
	if s.values != nil {
		m.fill(*s.values)
	}

	switch {
	case msg.nav.next != page.None:
		return m.enter(viewFor(msg.nav.next))
	case msg.nav.reloads > 0:
		return m.load()
	}
	return nil
}

func (m *appModel) resize(w, h int) {
	m.width = w
	m.height = h
	// header (2) + footer (3)
	lh := h - 5
	if lh < 3 {
		lh = 3
	}
	m.list.SetSize(w-2, lh)
}

func (m appModel) selectedRow() (page.TaskRow, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return page.TaskRow{}, false
	}
	return it.row, true
}
