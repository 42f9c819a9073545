package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// FormField describes one input of an AuthForm
type FormField struct {
	Key      string // form key, matches validation error keys
	Label    string
	Password bool
}

// AuthForm is a small stacked form used by the login and register views
type AuthForm struct {
	title  string
	fields []FormField
	inputs []textinput.Model
	focus  int

	errors    map[string]string // per-field validation messages
	formError string            // provider message shown above the form
	notice    string            // success notice
	busy      bool
}

// NewAuthForm creates a form with the given fields
func NewAuthForm(title string, fields []FormField) AuthForm {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 36
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		ti.Placeholder = f.Label
		if f.Password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}

	form := AuthForm{title: title, fields: fields, inputs: inputs}
	form.focusField(0)
	return form
}

// LoginFields are the sign-in form inputs
func LoginFields() []FormField {
	return []FormField{
		{Key: "email", Label: "Email address"},
		{Key: "password", Label: "Password", Password: true},
	}
}

// RegisterFields are the registration form inputs
func RegisterFields() []FormField {
	return []FormField{
		{Key: "first_name", Label: "First Name"},
		{Key: "last_name", Label: "Last Name"},
		{Key: "email", Label: "Email"},
		{Key: "password", Label: "Password", Password: true},
	}
}

func (f *AuthForm) focusField(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// Value returns the trimmed value of a field (passwords are returned as typed)
func (f AuthForm) Value(key string) string {
	for i, field := range f.fields {
		if field.Key == key {
			if field.Password {
				return f.inputs[i].Value()
			}
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

// SetValue fills a field
func (f *AuthForm) SetValue(key, value string) {
	for i, field := range f.fields {
		if field.Key == key {
			f.inputs[i].SetValue(value)
		}
	}
}

// SetErrors shows per-field validation messages
func (f *AuthForm) SetErrors(errs map[string]string) {
	f.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		f.errors[k] = v
	}
	f.busy = false
}

// FieldError returns the message for a field
func (f AuthForm) FieldError(key string) string {
	return f.errors[key]
}

// SetFormError shows a message above the form
func (f *AuthForm) SetFormError(msg string) {
	f.formError = msg
	f.busy = false
}

// FormError returns the message above the form
func (f AuthForm) FormError() string {
	return f.formError
}

// SetNotice shows a success notice above the form
func (f *AuthForm) SetNotice(msg string) {
	f.notice = msg
}

// Notice returns the success notice
func (f AuthForm) Notice() string {
	return f.notice
}

// SetBusy marks a submission in flight
func (f *AuthForm) SetBusy(busy bool) {
	f.busy = busy
}

// Busy reports whether a submission is in flight
func (f AuthForm) Busy() bool {
	return f.busy
}

// Reset clears values and messages
func (f *AuthForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errors = nil
	f.formError = ""
	f.notice = ""
	f.busy = false
	f.focusField(0)
}

// Update handles field navigation and typing; submitted is true on enter in the last field
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			return f, f.focusField(f.focus + 1), false
		case "shift+tab", "up":
			return f, f.focusField(f.focus - 1), false
		case "enter":
			if f.busy {
				return f, nil, false
			}
			if f.focus < len(f.inputs)-1 {
				return f, f.focusField(f.focus + 1), false
			}
			return f, nil, true
		}
	}

	var cmd tea.Cmd
	prev := f.inputs[f.focus].Value()
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.inputs[f.focus].Value() != prev && f.errors != nil {
		// Editing a field clears its message
		delete(f.errors, f.fields[f.focus].Key)
	}
	return f, cmd, false
}

// View renders the form
func (f AuthForm) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(f.title))
	b.WriteString("\n\n")

	if f.notice != "" {
		b.WriteString(styles.SuccessStyle.Render(f.notice))
		b.WriteString("\n\n")
	}
	if f.formError != "" {
		b.WriteString(styles.AlertStyle.Render(f.formError))
		b.WriteString("\n\n")
	}

	for i, field := range f.fields {
		label := styles.LabelStyle.Render(field.Label)
		if i == f.focus {
			label = styles.FocusedLabelStyle.Render(field.Label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg := f.errors[field.Key]; msg != "" {
			b.WriteString(styles.ErrorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if f.busy {
		b.WriteString(styles.DimStyle.Render("Submitting..."))
	}
	return strings.TrimRight(b.String(), "\n")
}
