package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm owns the two transient login inputs.
type loginForm struct {
	inputs []textinput.Model
	focus  int
}

// registerForm owns the four transient registration inputs.
type registerForm struct {
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 32
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newLoginForm() loginForm {
	f := loginForm{inputs: []textinput.Model{
		newInput("email", false),
		newInput("password", true),
	}}
	f.inputs[0].Focus()
	return f
}

func newRegisterForm() registerForm {
	f := registerForm{inputs: []textinput.Model{
		newInput("email", false),
		newInput("username", false),
		newInput("password", true),
		newInput("confirm password", true),
	}}
	f.inputs[0].Focus()
	return f
}

func (f *loginForm) values() (email, password string) {
	return strings.TrimSpace(f.inputs[0].Value()), f.inputs[1].Value()
}

func (f *registerForm) values() (email, username, password, confirm string) {
	return strings.TrimSpace(f.inputs[0].Value()),
		strings.TrimSpace(f.inputs[1].Value()),
		f.inputs[2].Value(),
		f.inputs[3].Value()
}

func (f *loginForm) reset()    { resetInputs(f.inputs, &f.focus) }
func (f *registerForm) reset() { resetInputs(f.inputs, &f.focus) }

func resetInputs(inputs []textinput.Model, focus *int) {
	for i := range inputs {
		inputs[i].SetValue("")
		inputs[i].Blur()
	}
	*focus = 0
	inputs[0].Focus()
}

func (f *loginForm) focusNext()    { moveFocus(f.inputs, &f.focus, 1) }
func (f *loginForm) focusPrev()    { moveFocus(f.inputs, &f.focus, -1) }
func (f *registerForm) focusNext() { moveFocus(f.inputs, &f.focus, 1) }
func (f *registerForm) focusPrev() { moveFocus(f.inputs, &f.focus, -1) }

func moveFocus(inputs []textinput.Model, focus *int, delta int) {
	inputs[*focus].Blur()
	*focus = (*focus + delta + len(inputs)) % len(inputs)
	inputs[*focus].Focus()
}

func (f *loginForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *registerForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (m *Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("codetutor — sign in"))
	b.WriteString("\n\n")
	for _, in := range m.login.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if s := m.statusLine(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	b.WriteString("\n" + footerStyle.Render("enter: sign in · ctrl+r: create account · ctrl+c: quit"))
	return b.String()
}

func (m *Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("codetutor — create account"))
	b.WriteString("\n\n")
	for _, in := range m.reg.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if s := m.statusLine(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	b.WriteString("\n" + footerStyle.Render("enter: register · ctrl+l: back to sign in · ctrl+c: quit"))
	return b.String()
}
