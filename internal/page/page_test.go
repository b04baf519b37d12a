package page_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/fakeapi"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/session"
	"taskvvts-cli/internal/validate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	user     = "ana@example.com"
	password = "secret"
)

// screen implements every view interface and records what was shown.
type screen struct {
	username, password           string
	name, lastName, email        string
	title, description, deadline string
	estimate                     string

	alerts    []string
	fieldErrs map[string]string
	formErr   string
	formError string
	message   string
	rows      []page.TaskRow
	card      *page.TaskCard
	values    *page.FormValues
}

func (s *screen) Username() string      { return s.username }
func (s *screen) Password() string      { return s.password }
func (s *screen) Name() string          { return s.name }
func (s *screen) LastName() string      { return s.lastName }
func (s *screen) Email() string         { return s.email }
func (s *screen) Title() string         { return s.title }
func (s *screen) Description() string   { return s.description }
func (s *screen) Deadline() string      { return s.deadline }
func (s *screen) EstimatedTime() string { return s.estimate }
func (s *screen) Alert(msg string)      { s.alerts = append(s.alerts, msg) }

func (s *screen) ClearErrors() {
	s.fieldErrs = map[string]string{}
	s.formErr = ""
}

func (s *screen) SetFieldError(field, msg string) {
	if s.fieldErrs == nil {
		s.fieldErrs = map[string]string{}
	}
	s.fieldErrs[field] = msg
}

func (s *screen) SetFormError(msg string)      { s.formErr = msg }
func (s *screen) SetTasks(rows []page.TaskRow) { s.rows = rows }
func (s *screen) SetTask(card page.TaskCard)   { s.card = &card }
func (s *screen) SetMessage(msg string)        { s.message = msg }
func (s *screen) SetValues(v page.FormValues)  { s.values = &v }
func (s *screen) SetError(msg string)          { s.formError = msg }

type navigator struct {
	visits  []page.Page
	reloads int
}

func (n *navigator) Navigate(to page.Page) { n.visits = append(n.visits, to) }
func (n *navigator) Reload()               { n.reloads++ }

func (n *navigator) last() page.Page {
	if len(n.visits) == 0 {
		return page.None
	}
	return n.visits[len(n.visits)-1]
}

type harness struct {
	fake *fakeapi.Server
	sess *session.Memory
	nav  *navigator
	env  page.Env
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := fakeapi.New()
	fake.Seed(user, password)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	sess := session.NewMemory()
	nav := &navigator{}
	return &harness{
		fake: fake,
		sess: sess,
		nav:  nav,
		env: page.Env{
			Session: sess,
			API:     api.New(srv.URL+fakeapi.BasePath, sess),
			Nav:     nav,
			Msg:     messages.English(),
			Locale:  "en",
		},
	}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	tok, err := h.fake.Token(user)
	require.NoError(t, err)
	require.NoError(t, h.sess.SetToken(tok))
}

func (h *harness) seed(t *testing.T, task model.Task) string {
	t.Helper()
	if task.Deadline.IsZero() {
		task.Deadline = model.NewLocalTime(time.Now().Add(48 * time.Hour))
	}
	id := h.fake.SeedTask(user, task)
	require.NoError(t, h.sess.SelectTask(id))
	return id
}

func TestProtectedScreensRedirectToLoginWithoutRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(page.Env, *screen) error
	}{
		{name: "list", run: func(env page.Env, s *screen) error { return page.NewTaskList(env, s).Load(context.Background()) }},
		{name: "add", run: func(env page.Env, s *screen) error { return page.NewTaskList(env, s).Add() }},
		{name: "detail", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).Load(context.Background()) }},
		{name: "clock in", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).ClockIn(context.Background()) }},
		{name: "delete", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).Delete(context.Background()) }},
		{name: "create", run: func(env page.Env, s *screen) error {
			s.title, s.description, s.deadline = "t", "d", "2099-01-01T10:00"
			return page.NewTaskCreate(env, s).Submit(context.Background())
		}},
		{name: "edit load", run: func(env page.Env, s *screen) error { return page.NewTaskEdit(env, s).Load(context.Background()) }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			require.NoError(t, h.sess.SelectTask("1"))

			err := tt.run(h.env, &screen{})
			require.Error(t, err)
			assert.ErrorIs(t, err, session.ErrNoToken)
			assert.Equal(t, page.Login, h.nav.last())
			assert.Equal(t, page.Login, page.NextOf(err))
			assert.Equal(t, int64(0), h.fake.Hits())
		})
	}
}

type screenOp struct {
	name string
	run  func(page.Env, *screen) error
}

func withForm(s *screen) *screen {
	s.title, s.description, s.deadline = "t", "d", "2099-01-01T10:00"
	return s
}

// taskScopedOps are the operations that need a selected task.
var taskScopedOps = []screenOp{
	{name: "detail", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).Load(context.Background()) }},
	{name: "clock in", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).ClockIn(context.Background()) }},
	{name: "clock out", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).ClockOut(context.Background()) }},
	{name: "complete", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).MarkComplete(context.Background()) }},
	{name: "delete", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).Delete(context.Background()) }},
	{name: "check time", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).CheckTime(context.Background()) }},
	{name: "spent time", run: func(env page.Env, s *screen) error {
		_, err := page.NewTaskDetail(env, s).SpentTime(context.Background())
		return err
	}},
	{name: "edit load", run: func(env page.Env, s *screen) error { return page.NewTaskEdit(env, s).Load(context.Background()) }},
	{name: "edit submit", run: func(env page.Env, s *screen) error {
		return page.NewTaskEdit(env, withForm(s)).Submit(context.Background())
	}},
}

// apiOps is every operation that reaches a protected endpoint.
var apiOps = append([]screenOp{
	{name: "list", run: func(env page.Env, s *screen) error { return page.NewTaskList(env, s).Load(context.Background()) }},
	{name: "filter", run: func(env page.Env, s *screen) error {
		return page.NewTaskList(env, s).Filter(context.Background(), "pending")
	}},
	{name: "create", run: func(env page.Env, s *screen) error {
		return page.NewTaskCreate(env, withForm(s)).Submit(context.Background())
	}},
}, taskScopedOps...)

func TestTaskScopedScreensRedirectToListWithoutSelection(t *testing.T) {
	t.Parallel()

	tests := append([]screenOp{
		{name: "edit button", run: func(env page.Env, s *screen) error { return page.NewTaskDetail(env, s).Edit() }},
	}, taskScopedOps...)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			h.login(t)
			s := &screen{}

			err := tt.run(h.env, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, session.ErrNoSelectedTask)
			assert.Equal(t, page.TaskList, h.nav.last())
			assert.Equal(t, page.TaskList, page.NextOf(err))
			assert.Empty(t, s.alerts)
			assert.Equal(t, int64(0), h.fake.Hits())
		})
	}
}

func TestLoginStoresTokenAndOpensList(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	err := page.NewLogin(h.env, &screen{username: user, password: password}).Submit(context.Background())
	require.NoError(t, err)
	tok, ok := h.sess.Token()
	assert.True(t, ok)
	assert.NotEmpty(t, tok)
	assert.Equal(t, page.TaskList, h.nav.last())
}

func TestLoginFailureAlertsServerMessage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	s := &screen{username: user, password: "nope"}

	err := page.NewLogin(h.env, s).Submit(context.Background())
	require.Error(t, err)
	require.Len(t, s.alerts, 1)
	assert.Equal(t, "Login error: Invalid username or password", s.alerts[0])
	assert.Empty(t, h.nav.visits)
	_, ok := h.sess.Token()
	assert.False(t, ok)
}

func TestLoginFailureWithoutMessage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	h.env.API = api.New(srv.URL, h.sess)
	s := &screen{username: user, password: password}

	err := page.NewLogin(h.env, s).Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Login error: Failure to login"}, s.alerts)
}

func TestRegisterValidatesFieldsInOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		s     screen
		field string
		want  string
	}{
		{name: "name", s: screen{lastName: "L", email: "a@b.co", password: "p"}, field: page.FieldName, want: "Name is required."},
		{name: "last name", s: screen{name: "N", email: "a@b.co", password: "p"}, field: page.FieldLastName, want: "Last name is required."},
		{name: "email before password", s: screen{name: "N", lastName: "L"}, field: page.FieldEmail, want: "Email is required."},
		{name: "password", s: screen{name: "N", lastName: "L", email: "a@b.co"}, field: page.FieldPassword, want: "Password is required."},
		{name: "email shape", s: screen{name: "N", lastName: "L", email: "a@b", password: "p"}, field: page.FieldEmail, want: "Email is invalid."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			s := tt.s

			err := page.NewRegister(h.env, &s).Submit(context.Background())
			require.Error(t, err)
			assert.Equal(t, map[string]string{tt.field: tt.want}, s.fieldErrs)
			assert.Equal(t, int64(0), h.fake.Hits())
		})
	}
}

func TestRegisterDuplicateShowsFormError(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	s := &screen{name: "Ana", lastName: "Lima", email: user, password: "x"}

	err := page.NewRegister(h.env, s).Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Username already exists.", s.formErr)
	assert.Empty(t, h.nav.visits)

	s.email = "fresh@example.com"
	require.NoError(t, page.NewRegister(h.env, s).Submit(context.Background()))
	assert.Empty(t, s.formErr)
	assert.Equal(t, page.Login, h.nav.last())
}

func TestTaskListRendersRows(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	dl := model.NewLocalTime(time.Date(2099, 7, 4, 14, 5, 0, 0, time.Local))
	h.fake.SeedTask(user, model.Task{ID: "1", Title: "Ship", Description: "v1", Deadline: dl, Status: model.StatusInProgress})
	h.fake.SeedTask(user, model.Task{ID: "2", Deadline: dl})
	s := &screen{}

	require.NoError(t, page.NewTaskList(h.env, s).Load(context.Background()))
	require.Len(t, s.rows, 2)
	assert.Equal(t, "Ship", s.rows[0].Title)
	assert.Equal(t, "v1", s.rows[0].Description)
	assert.Equal(t, "Status: In Progress", s.rows[0].Status)
	assert.Equal(t, "Deadline: 7/4/2099 2:05:00 PM", s.rows[0].Deadline)
	assert.Equal(t, "No Title", s.rows[1].Title)
	assert.Equal(t, "No description provided.", s.rows[1].Description)
}

func TestTaskListFilter(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	dl := model.NewLocalTime(time.Now().Add(time.Hour))
	h.fake.SeedTask(user, model.Task{ID: "1", Title: "a", Deadline: dl})
	h.fake.SeedTask(user, model.Task{ID: "2", Title: "b", Deadline: dl, Status: model.StatusCompleted})
	s := &screen{}
	c := page.NewTaskList(h.env, s)

	require.NoError(t, c.Filter(context.Background(), "done"))
	require.Len(t, s.rows, 1)
	assert.Equal(t, "2", s.rows[0].ID)

	hits := h.fake.Hits()
	err := c.Filter(context.Background(), "someday")
	require.Error(t, err)
	assert.Equal(t, []string{"Unknown status filter."}, s.alerts)
	assert.Equal(t, hits, h.fake.Hits())
}

func TestTaskListSelectStoresID(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, page.NewTaskList(h.env, &screen{}).Select("42"))
	id, ok := h.sess.SelectedTaskID()
	assert.True(t, ok)
	assert.Equal(t, "42", id)
	assert.Equal(t, page.TaskDetail, h.nav.last())
}

func TestUnauthorizedRedirectsToLogin(t *testing.T) {
	t.Parallel()

	for _, op := range apiOps {
		for _, drop := range []bool{false, true} {
			op, drop := op, drop
			name := op.name + "/keep token"
			if drop {
				name = op.name + "/clear token"
			}
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				h := newHarness(t)
				h.login(t)
				h.seed(t, model.Task{Title: "t"})
				h.fake.ForceStatus(http.StatusUnauthorized)
				h.env.ClearOnUnauthorized = drop
				s := &screen{}

				err := op.run(h.env, s)
				require.Error(t, err)
				assert.Equal(t, api.KindUnauthorized, api.KindOf(err))
				assert.Equal(t, page.Login, h.nav.last())
				assert.Equal(t, page.Login, page.NextOf(err))
				assert.Empty(t, s.alerts)
				_, ok := h.sess.Token()
				assert.Equal(t, !drop, ok)
			})
		}
	}
}

func TestStaleTokenRedirectsToLogin(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	require.NoError(t, h.sess.SetToken("stale"))
	s := &screen{}

	err := page.NewTaskList(h.env, s).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.KindUnauthorized, api.KindOf(err))
	assert.Equal(t, page.Login, h.nav.last())
	assert.Empty(t, s.alerts)
	_, ok := h.sess.Token()
	assert.True(t, ok)
}

func TestServerErrorAlertsGenericMessage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.fake.ForceStatus(http.StatusInternalServerError)
	s := &screen{}

	err := page.NewTaskList(h.env, s).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Error fetching tasks. Please try again later."}, s.alerts)
	assert.Empty(t, h.nav.visits)
}

func TestTransportErrorAlertsGenericMessage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	h.env.API = api.New(srv.URL, h.sess, api.WithTimeout(time.Second))
	s := &screen{title: "t", description: "d", deadline: "2099-01-01T10:00"}

	err := page.NewTaskCreate(h.env, s).Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.KindTransport, api.KindOf(err))
	assert.Equal(t, []string{"Error creating task. Please try again later."}, s.alerts)
}

func TestDetailRoundTrip(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	dl := model.NewLocalTime(time.Date(2099, 1, 2, 9, 30, 0, 0, time.Local))
	h.seed(t, model.Task{Title: "Review", Description: "PR 12", Deadline: dl})
	s := &screen{}

	require.NoError(t, page.NewTaskDetail(h.env, s).Load(context.Background()))
	require.NotNil(t, s.card)
	assert.Equal(t, "Review", s.card.Title)
	assert.Equal(t, "PR 12", s.card.Description)
	assert.Equal(t, "Status: Pending", s.card.Status)
	assert.Equal(t, "Deadline: "+validate.FormatDateTime(dl.Time, "en"), s.card.Deadline)
	assert.Empty(t, s.card.Details)
	assert.Empty(t, s.card.Suggestion)
}

func TestDetailShowsOnlyPresentOptionalFields(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	est, spent := int64(90), int64(0)
	suggestion := "Split it up."
	h.seed(t, model.Task{Title: "x", Description: "y", EstimatedTime: &est, TimeSpent: &spent, Suggestion: &suggestion})
	s := &screen{}

	require.NoError(t, page.NewTaskDetail(h.env, s).Load(context.Background()))
	assert.Equal(t, []string{"Estimated time: 1 hour 30 minutes", "Suggestion: Split it up."}, s.card.Details)
	assert.Equal(t, "Split it up.", s.card.Suggestion)
}

func TestClockInForbiddenStaysOnScreen(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.seed(t, model.Task{Title: "x", Status: model.StatusInProgress})
	s := &screen{}

	err := page.NewTaskDetail(h.env, s).ClockIn(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Only Pending tasks can be clocked in.", s.message)
	assert.Empty(t, h.nav.visits)
	assert.Zero(t, h.nav.reloads)
}

func TestTransitionsReloadOnSuccess(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	id := h.seed(t, model.Task{Title: "x"})
	s := &screen{}
	c := page.NewTaskDetail(h.env, s)

	require.NoError(t, c.ClockIn(context.Background()))
	assert.Equal(t, 1, h.nav.reloads)
	got, _ := h.fake.Task(id)
	assert.Equal(t, model.StatusInProgress, got.Status)

	err := c.ClockIn(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Only Pending tasks can be clocked in.", s.message)

	require.NoError(t, c.ClockOut(context.Background()))
	assert.Equal(t, 2, h.nav.reloads)
	assert.Empty(t, s.message)

	err = c.MarkComplete(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Only In Progress tasks can be marked as completed.", s.message)
}

func TestDeleteReturnsToList(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	id := h.seed(t, model.Task{Title: "x"})

	require.NoError(t, page.NewTaskDetail(h.env, &screen{}).Delete(context.Background()))
	assert.Equal(t, page.TaskList, h.nav.last())
	_, ok := h.fake.Task(id)
	assert.False(t, ok)
	_, selected := h.sess.SelectedTaskID()
	assert.False(t, selected)
}

func TestCheckTimeShowsNotice(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	h.seed(t, model.Task{Title: "x"})
	s := &screen{}

	require.NoError(t, page.NewTaskDetail(h.env, s).CheckTime(context.Background()))
	assert.Equal(t, "Task is within the estimated time.", s.message)
	assert.Equal(t, 1, h.nav.reloads)
}

func TestCreateRequiresAllFields(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	s := &screen{title: "", description: "something", deadline: "2099-05-01T08:00"}

	err := page.NewTaskCreate(h.env, s).Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "All fields are required.", s.formError)
	assert.Equal(t, int64(0), h.fake.Hits())
	assert.Empty(t, h.nav.visits)
}

func TestCreateRejectsBadInputsWithoutRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deadline string
		estimate string
		want     string
	}{
		{name: "deadline shape", deadline: "tomorrow", want: "Deadline must look like YYYY-MM-DDTHH:MM."},
		{name: "estimate", deadline: "2099-05-01T08:00", estimate: "-5", want: "Estimated time must be a positive number of minutes."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			h.login(t)
			s := &screen{title: "t", description: "d", deadline: tt.deadline, estimate: tt.estimate}

			err := page.NewTaskCreate(h.env, s).Submit(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.want, s.formError)
			assert.Equal(t, int64(0), h.fake.Hits())
		})
	}
}

func TestCreateNavigatesToList(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	s := &screen{title: "Plan", description: "week", deadline: "2099-05-01T08:00", estimate: "45"}

	require.NoError(t, page.NewTaskCreate(h.env, s).Submit(context.Background()))
	assert.Equal(t, page.TaskList, h.nav.last())

	list := &screen{}
	require.NoError(t, page.NewTaskList(h.env, list).Load(context.Background()))
	require.Len(t, list.rows, 1)
	assert.Equal(t, "Plan", list.rows[0].Title)
	assert.Equal(t, "2099-05-01T08:00:00", list.rows[0].Task.Deadline.String())
}

func TestEditPrefillsAndSaves(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	dl := model.NewLocalTime(time.Date(2099, 3, 4, 5, 6, 0, 0, time.Local))
	id := h.seed(t, model.Task{Title: "Old", Description: "desc", Deadline: dl})
	s := &screen{}
	c := page.NewTaskEdit(h.env, s)

	require.NoError(t, c.Load(context.Background()))
	require.NotNil(t, s.values)
	assert.Equal(t, page.FormValues{Title: "Old", Description: "desc", Deadline: "2099-03-04T05:06"}, *s.values)

	s.title, s.description, s.deadline = "New", s.values.Description, s.values.Deadline
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, page.TaskList, h.nav.last())
	got, _ := h.fake.Task(id)
	assert.Equal(t, "New", got.Title)
}

func TestEditMissingTask(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	require.NoError(t, h.sess.SelectTask("gone"))
	s := &screen{title: "t", description: "d", deadline: "2099-01-01T00:00"}

	err := page.NewTaskEdit(h.env, s).Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Task not found.", s.formError)
	assert.Empty(t, h.nav.visits)
}

// stuckSelection is a session whose selected-task slot cannot be cleared.
type stuckSelection struct {
	*session.Memory
}

func (stuckSelection) ClearSelectedTask() error { return errors.New("disk full") }

func TestDeleteLogsSelectionClearFailure(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.login(t)
	id := h.seed(t, model.Task{Title: "t"})

	core, logs := observer.New(zap.WarnLevel)
	h.env.Log = zap.New(core)
	h.env.Session = stuckSelection{h.sess}
	s := &screen{}

	require.NoError(t, page.NewTaskDetail(h.env, s).Delete(context.Background()))
	_, ok := h.fake.Task(id)
	assert.False(t, ok)
	assert.Equal(t, page.TaskList, h.nav.last())
	assert.Empty(t, s.alerts)

	entries := logs.FilterMessage("clear selected task").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
}
