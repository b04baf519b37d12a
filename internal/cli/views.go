package cli

import (
	"strings"

	"taskvvts-cli/internal/page"

	"github.com/charmbracelet/lipgloss"
)

// nav records where a controller wanted to go; commands report it as meta.next.
type nav struct {
	next    page.Page
	reloads int
}

func (n *nav) Navigate(to page.Page) { n.next = to }
func (n *nav) Reload()               { n.reloads++ }

func (n *nav) meta() map[string]any {
	m := map[string]any{}
	if n.next != page.None {
		m["next"] = n.next.String()
	}
	return m
}

// flagView is every page view backed by command flags. Whatever the
// controller shows is kept for the command's output.
type flagView struct {
	username, password string

	name, lastName, email string

	title, description, deadline, estimate string
	prefilled                              *page.FormValues
	override                               map[string]bool

	alerts    []string
	fieldErrs map[string]string
	formErr   string
	message   string
	rows      []page.TaskRow
	card      *page.TaskCard
}

func (v *flagView) Username() string { return v.username }
func (v *flagView) Password() string { return v.password }
func (v *flagView) Name() string     { return v.name }
func (v *flagView) LastName() string { return v.lastName }
func (v *flagView) Email() string    { return v.email }

// Form getters prefer explicit flags over prefilled values (edit).
func (v *flagView) field(name, flag string, prefill func(page.FormValues) string) string {
	if v.prefilled == nil || v.override[name] {
		return flag
	}
	return prefill(*v.prefilled)
}

func (v *flagView) Title() string {
	return v.field("title", v.title, func(f page.FormValues) string { return f.Title })
}

func (v *flagView) Description() string {
	return v.field("description", v.description, func(f page.FormValues) string { return f.Description })
}

func (v *flagView) Deadline() string {
	return v.field("deadline", v.deadline, func(f page.FormValues) string { return f.Deadline })
}

func (v *flagView) EstimatedTime() string {
	return v.field("estimate", v.estimate, func(f page.FormValues) string { return f.EstimatedTime })
}

func (v *flagView) SetValues(f page.FormValues) { v.prefilled = &f }

func (v *flagView) Alert(msg string) { v.alerts = append(v.alerts, msg) }

func (v *flagView) ClearErrors() {
	v.fieldErrs = nil
	v.formErr = ""
}

func (v *flagView) SetFieldError(field, msg string) {
	if v.fieldErrs == nil {
		v.fieldErrs = map[string]string{}
	}
	v.fieldErrs[field] = msg
}

func (v *flagView) SetFormError(msg string) { v.formErr = msg }
func (v *flagView) SetError(msg string)     { v.formErr = msg }
func (v *flagView) SetMessage(msg string)   { v.message = msg }

func (v *flagView) SetTasks(rows []page.TaskRow) { v.rows = rows }

func (v *flagView) SetTask(card page.TaskCard) { v.card = &card }

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// taskRows renders the list for --format text.
type taskRows []page.TaskRow

func (rows taskRows) Text() string {
	if len(rows) == 0 {
		return dimStyle.Render("(no tasks)")
	}
	blocks := make([]string, 0, len(rows))
	for _, r := range rows {
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(r.Title)+" "+dimStyle.Render("#"+r.ID),
			r.Description,
			r.Status,
			r.Deadline,
		))
	}
	return strings.Join(blocks, "\n\n")
}

// taskCard renders the detail screen for --format text.
type taskCard page.TaskCard

func (c taskCard) Text() string {
	lines := []string{
		titleStyle.Render(c.Title) + " " + dimStyle.Render("#"+c.ID),
		c.Description,
		c.Status,
		c.Deadline,
	}
	lines = append(lines, c.Details...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
