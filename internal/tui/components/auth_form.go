package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
)

// FormAction is what the caller should do after AuthForm.Update
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormCancel
)

// FormLabels holds the visible strings of the credential form
type FormLabels struct {
	Name     string
	Email    string
	Password string
	Submit   string
	Cancel   string
	Busy     string
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

const formWidth = 40

// AuthForm is the credential modal opened by the login and register buttons.
// Login asks for email and password; register also asks for a name.
type AuthForm struct {
	visible  bool
	register bool
	busy     bool
	title    string
	errText  string
	inputs   [fieldCount]textinput.Model
	focusIdx int
	labels   FormLabels
	keys     AuthFormKeyMap
}

// NewAuthForm creates a hidden credential form
func NewAuthForm(labels FormLabels) AuthForm {
	f := AuthForm{labels: labels, keys: DefaultAuthFormKeyMap()}
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 120
		ti.Width = formWidth - 4
		ti.Prompt = "> "
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	f.inputs[fieldEmail].Placeholder = "ana@example.com"
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '•'
	return f
}

// Show opens an empty form. register selects the three-field variant.
func (f *AuthForm) Show(title string, register bool) tea.Cmd {
	f.visible = true
	f.register = register
	f.busy = false
	f.title = title
	f.errText = ""
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focusIdx = 0
	return f.focusCurrent()
}

// Hide dismisses the form
func (f *AuthForm) Hide() {
	f.visible = false
	f.busy = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f AuthForm) IsVisible() bool { return f.visible }

// IsRegister reports whether the form collects a registration
func (f AuthForm) IsRegister() bool { return f.register }

// SetBusy shows or clears the in-progress line
func (f *AuthForm) SetBusy(busy bool) { f.busy = busy }

// SetError shows a failure line under the fields
func (f *AuthForm) SetError(text string) { f.errText = text }

// Credentials returns the login input
func (f AuthForm) Credentials() domain.Credentials {
	return domain.Credentials{
		Email:    f.inputs[fieldEmail].Value(),
		Password: f.inputs[fieldPassword].Value(),
	}
}

// Registration returns the register input
func (f AuthForm) Registration() domain.Registration {
	return domain.Registration{
		Name:     f.inputs[fieldName].Value(),
		Email:    f.inputs[fieldEmail].Value(),
		Password: f.inputs[fieldPassword].Value(),
	}
}

// fields returns the indexes of the inputs in use, in tab order
func (f AuthForm) fields() []int {
	if f.register {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f *AuthForm) focusCurrent() tea.Cmd {
	fields := f.fields()
	for _, idx := range fields {
		f.inputs[idx].Blur()
	}
	return f.inputs[fields[f.focusIdx]].Focus()
}

// Update handles input events. Submit and cancel are reported, not acted on.
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd, FormAction) {
	if !f.visible {
		return f, nil, FormNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Submit):
			return f, nil, FormSubmit
		case key.Matches(keyMsg, f.keys.Cancel):
			return f, nil, FormCancel
		case key.Matches(keyMsg, f.keys.Next):
			f.focusIdx = (f.focusIdx + 1) % len(f.fields())
			return f, f.focusCurrent(), FormNone
		case key.Matches(keyMsg, f.keys.Prev):
			n := len(f.fields())
			f.focusIdx = (f.focusIdx - 1 + n) % n
			return f, f.focusCurrent(), FormNone
		}
	}

	idx := f.fields()[f.focusIdx]
	var cmd tea.Cmd
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	if f.errText != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			f.errText = ""
		}
	}
	return f, cmd, FormNone
}

// View renders the form as a bordered modal
func (f AuthForm) View() string {
	if !f.visible {
		return ""
	}

	names := [fieldCount]string{f.labels.Name, f.labels.Email, f.labels.Password}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(f.title))
	b.WriteString("\n")
	for i, idx := range f.fields() {
		labelStyle := styles.LabelStyle
		if i == f.focusIdx {
			labelStyle = labelStyle.Foreground(styles.Teal)
		}
		b.WriteString(labelStyle.Render(names[idx]))
		b.WriteString("\n")
		b.WriteString(f.inputs[idx].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString(styles.WarningStyle.Render(f.labels.Busy))
	case f.errText != "":
		b.WriteString(styles.ErrorStyle.Render(styles.Truncate(f.errText, formWidth)))
	default:
		b.WriteString(styles.DimStyle.Render(f.labels.Submit + " · " + f.labels.Cancel))
	}

	return styles.ModalStyle.Width(formWidth).Render(b.String())
}
