package tui

import (
	"strings"

	"taskvvts-cli/internal/page"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Form input keys. Register keys match the field names controllers pass
// to SetFieldError.
const (
	keyUsername    = "username"
	keyPassword    = page.FieldPassword
	keyName        = page.FieldName
	keyLastName    = page.FieldLastName
	keyEmail       = page.FieldEmail
	keyTitle       = "title"
	keyDescription = "description"
	keyDeadline    = "deadline"
	keyEstimate    = "estimatedTime"
)

type formField struct {
	key         string
	label       string
	placeholder string
	secret      bool
}

var (
	loginFields = []formField{
		{key: keyUsername, label: "Username", placeholder: "you@example.com"},
		{key: keyPassword, label: "Password", secret: true},
	}
	registerFields = []formField{
		{key: keyName, label: "Name"},
		{key: keyLastName, label: "Last name"},
		{key: keyEmail, label: "Email", placeholder: "you@example.com"},
		{key: keyPassword, label: "Password", secret: true},
	}
	taskFields = []formField{
		{key: keyTitle, label: "Title"},
		{key: keyDescription, label: "Description"},
		{key: keyDeadline, label: "Deadline", placeholder: "YYYY-MM-DDTHH:MM"},
		{key: keyEstimate, label: "Estimated time (minutes)", placeholder: "optional"},
	}
)

func newInput(f formField) textinput.Model {
	in := textinput.New()
	in.Placeholder = f.placeholder
	in.Prompt = "> "
	in.CharLimit = 500
	in.TextStyle = lipgloss.NewStyle().Background(colorInputBg)
	if f.secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func (m *appModel) setForm(fields []formField) {
	m.fields = fields
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		m.inputs[i] = newInput(f)
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func (m *appModel) focusField(i int) {
	if len(m.inputs) == 0 {
		return
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m appModel) formValues() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for i, f := range m.fields {
		out[f.key] = m.inputs[i].Value()
	}
	return out
}

// fill copies prefilled values into the task form.
func (m *appModel) fill(v page.FormValues) {
	set := map[string]string{
		keyTitle:       v.Title,
		keyDescription: v.Description,
		keyDeadline:    v.Deadline,
		keyEstimate:    v.EstimatedTime,
	}
	for i, f := range m.fields {
		if val, ok := set[f.key]; ok {
			m.inputs[i].SetValue(val)
			m.inputs[i].CursorEnd()
		}
	}
}

func (m appModel) renderForm() string {
	var b strings.Builder
	for i, f := range m.fields {
		label := styleMuted().Render(f.label)
		if i == m.focus {
			label = styleFocusedLabel().Render(f.label)
		}
		b.WriteString(label + "\n")
		b.WriteString(m.inputs[i].View() + "\n")
		if msg := m.fieldErrs[f.key]; msg != "" {
			b.WriteString(styleError().Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(styleError().Render(m.formErr) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
