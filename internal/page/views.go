package page

import "taskvvts-cli/internal/model"

type LoginView interface {
	Username() string
	Password() string
	Alert(msg string)
}

// Register form fields, as passed to SetFieldError.
const (
	FieldName     = "name"
	FieldLastName = "lastName"
	FieldEmail    = "email"
	FieldPassword = "password"
)

type RegisterView interface {
	Name() string
	LastName() string
	Email() string
	Password() string
	// ClearErrors resets field and form errors before a new submission.
	ClearErrors()
	SetFieldError(field, msg string)
	SetFormError(msg string)
	Alert(msg string)
}

// TaskRow is one rendered entry of the task list.
type TaskRow struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Deadline    string           `json:"deadline"`
	Task        model.Task       `json:"-"`
	Code        model.TaskStatus `json:"-"`
}

type TaskListView interface {
	SetTasks(rows []TaskRow)
	Alert(msg string)
}

// TaskCard is the rendered detail screen. Details holds only the optional
// lines the task actually has.
type TaskCard struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Deadline    string     `json:"deadline"`
	Details     []string   `json:"details,omitempty"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Task        model.Task `json:"-"`
}

type TaskDetailView interface {
	SetTask(card TaskCard)
	// SetMessage shows an inline notice; "" clears it.
	SetMessage(msg string)
	Alert(msg string)
}

// FormValues prefill the task form.
type FormValues struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Deadline      string `json:"deadline"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
}

type TaskFormView interface {
	Title() string
	Description() string
	Deadline() string
	EstimatedTime() string
	SetValues(v FormValues)
	// SetError shows the form error line; "" clears it.
	SetError(msg string)
	Alert(msg string)
}
