package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/fakeapi"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/gin-gonic/gin"
	"github.com/muesli/termenv"
)

const (
	testUser     = "ana@example.com"
	testPassword = "secret"
)

type fixture struct {
	fake *fakeapi.Server
	sess *session.Memory
	env  page.Env
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lipgloss.SetColorProfile(termenv.Ascii)

	fake := fakeapi.New()
	fake.Seed(testUser, testPassword)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	sess := session.NewMemory()
	return &fixture{
		fake: fake,
		sess: sess,
		env: page.Env{
			Session: sess,
			API:     api.New(srv.URL+fakeapi.BasePath, sess),
			Msg:     messages.English(),
			Locale:  "en",
		},
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	tok, err := f.fake.Token(testUser)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if err := f.sess.SetToken(tok); err != nil {
		t.Fatalf("set token: %v", err)
	}
}

func (f *fixture) seed(title string, status model.TaskStatus) string {
	return f.fake.SeedTask(testUser, model.Task{
		Title:       title,
		Description: title + " notes",
		Deadline:    model.NewLocalTime(time.Now().Add(48 * time.Hour)),
		Status:      status,
	})
}

// settle runs cmd the way the Bubble Tea runtime would, feeding controller
// results back into the model. Timers (cursor blink, spinner) are dropped.
func settle(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, c)
		}
	case doneMsg:
		next, more := m.Update(msg)
		m = settle(t, next.(appModel), more)
	}
	return m
}

func start(t *testing.T, f *fixture) appModel {
	t.Helper()
	m := newAppModel(context.Background(), f.env)
	m.resize(100, 40)
	return settle(t, m, m.Init())
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = settle(t, next.(appModel), cmd)
	}
	return m
}

func screen(m appModel) string {
	return xansi.Strip(m.View())
}

func TestStartsOnLoginWithoutToken(t *testing.T) {
	f := newFixture(t)
	m := start(t, f)

	if m.view != viewLogin {
		t.Fatalf("expected login view, got %v", m.view.crumb())
	}
	if f.fake.Hits() != 0 {
		t.Fatalf("expected no requests before login, got %d", f.fake.Hits())
	}
	if !strings.Contains(screen(m), "Username") {
		t.Fatalf("expected login form, got:\n%s", screen(m))
	}
}

func TestLoginOpensTaskList(t *testing.T) {
	f := newFixture(t)
	f.seed("Write report", model.StatusPending)
	m := start(t, f)

	m = press(t, m, testUser, "tab", testPassword, "enter")

	if m.view != viewTasks {
		t.Fatalf("expected tasks view, got %v (alert %q)", m.view.crumb(), m.alert)
	}
	if _, ok := f.sess.Token(); !ok {
		t.Fatalf("expected token stored after login")
	}
	out := screen(m)
	if !strings.Contains(out, "Write report") {
		t.Fatalf("expected task in list, got:\n%s", out)
	}
	if strings.Contains(out, testPassword) {
		t.Fatalf("password must not be echoed")
	}
}

func TestLoginFailureShowsAlert(t *testing.T) {
	f := newFixture(t)
	m := start(t, f)

	m = press(t, m, testUser, "tab", "wrong", "enter")

	if m.view != viewLogin {
		t.Fatalf("expected to stay on login, got %v", m.view.crumb())
	}
	if !strings.Contains(screen(m), "Login error: Invalid username or password") {
		t.Fatalf("expected login error, got:\n%s", screen(m))
	}
}

func TestRegisterShowsFieldErrors(t *testing.T) {
	f := newFixture(t)
	m := start(t, f)

	m = press(t, m, "ctrl+r")
	if m.view != viewRegister {
		t.Fatalf("expected register view, got %v", m.view.crumb())
	}
	m = press(t, m, "ctrl+s")

	if got := m.fieldErrs[keyName]; got == "" {
		t.Fatalf("expected a name error, got %#v", m.fieldErrs)
	}
	if f.fake.Hits() != 0 {
		t.Fatalf("expected no request for an empty form, got %d", f.fake.Hits())
	}

	m = press(t, m, "esc")
	if m.view != viewLogin {
		t.Fatalf("expected esc to return to login, got %v", m.view.crumb())
	}
}

func TestOpenTaskAndClockIn(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	id := f.seed("Write report", model.StatusPending)
	m := start(t, f)

	m = press(t, m, "enter")
	if m.view != viewTask {
		t.Fatalf("expected task view, got %v", m.view.crumb())
	}
	if sel, _ := f.sess.SelectedTaskID(); sel != id {
		t.Fatalf("expected %s selected, got %q", id, sel)
	}
	if !strings.Contains(screen(m), "Status: Pending") {
		t.Fatalf("expected pending card, got:\n%s", screen(m))
	}

	m = press(t, m, "i")
	if !strings.Contains(screen(m), "Status: In Progress") {
		t.Fatalf("expected card reloaded after clock-in, got:\n%s", screen(m))
	}

	m = press(t, m, "i")
	if m.message == "" {
		t.Fatalf("expected an inline message for a second clock-in")
	}

	m = press(t, m, "esc")
	if m.view != viewTasks {
		t.Fatalf("expected esc to go back to the list, got %v", m.view.crumb())
	}
}

func TestStatusFilterCycles(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.seed("Pending one", model.StatusPending)
	f.seed("Running one", model.StatusInProgress)
	m := start(t, f)

	if n := len(m.list.Items()); n != 2 {
		t.Fatalf("expected 2 tasks, got %d", n)
	}
	m = press(t, m, "s")
	if m.filter != string(model.StatusPending) {
		t.Fatalf("expected pending filter, got %q", m.filter)
	}
	if n := len(m.list.Items()); n != 1 {
		t.Fatalf("expected 1 pending task, got %d", n)
	}
	if !strings.Contains(screen(m), "status: Pending") {
		t.Fatalf("expected filter in header, got:\n%s", screen(m))
	}
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	m := start(t, f)

	m = press(t, m, "a")
	if m.view != viewCreate {
		t.Fatalf("expected create view, got %v", m.view.crumb())
	}
	before := f.fake.Hits()
	m = press(t, m, "ctrl+s")
	if !strings.Contains(screen(m), "All fields are required.") {
		t.Fatalf("expected required message, got:\n%s", screen(m))
	}
	if f.fake.Hits() != before {
		t.Fatalf("expected no request for an invalid form")
	}

	deadline := time.Now().Add(72 * time.Hour).Format("2006-01-02T15:04")
	m = press(t, m, "Ship it", "tab", "Release notes", "tab", deadline, "tab", "30", "ctrl+s")
	if m.view != viewTasks {
		t.Fatalf("expected list after create, got %v (form error %q)", m.view.crumb(), m.formErr)
	}
	if !strings.Contains(screen(m), "Ship it") {
		t.Fatalf("expected created task listed, got:\n%s", screen(m))
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	id := f.seed("Doomed", model.StatusPending)
	m := start(t, f)
	m = press(t, m, "enter")

	m = press(t, m, "d", "n")
	if _, ok := f.fake.Task(id); !ok {
		t.Fatalf("expected task kept after declining")
	}

	m = press(t, m, "d")
	if !strings.Contains(screen(m), "Delete this task?") {
		t.Fatalf("expected confirmation prompt, got:\n%s", screen(m))
	}
	m = press(t, m, "y")
	if _, ok := f.fake.Task(id); ok {
		t.Fatalf("expected task deleted")
	}
	if m.view != viewTasks {
		t.Fatalf("expected list after delete, got %v", m.view.crumb())
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.seed("Write report", model.StatusPending)
	m := start(t, f)

	m.busy = true
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || next.(appModel).view != viewTasks {
		t.Fatalf("expected enter to be ignored while busy")
	}
}

func TestUnauthorizedReturnsToLogin(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.seed("Write report", model.StatusPending)
	m := start(t, f)

	f.fake.ForceStatus(http.StatusUnauthorized)
	m = press(t, m, "r")
	if m.view != viewLogin {
		t.Fatalf("expected login after 401, got %v", m.view.crumb())
	}
}

func TestTaskItemShowsRelativeDeadline(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.seed("Write report", model.StatusPending)
	m := start(t, f)

	row, ok := m.selectedRow()
	if !ok {
		t.Fatalf("expected a selected row")
	}
	desc := taskItem{row: row}.Description()
	if !strings.Contains(desc, "Status: Pending") || !strings.Contains(desc, "from now") {
		t.Fatalf("unexpected description %q", desc)
	}
}
