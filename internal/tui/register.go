package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/tui/themes"
)

// registerModel is the account creation view.
type registerModel struct {
	errMsg     string
	inputs     []textinput.Model
	spinner    spinner.Model
	theme      themes.Theme
	focus      int
	submitting bool
}

func newRegisterModel(theme themes.Theme) registerModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 80
	username.Width = 40
	username.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 120
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return registerModel{
		theme:   theme,
		inputs:  []textinput.Model{username, email, password},
		spinner: sp,
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "enter":
			return m.submit()
		}

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()

	if username == "" || email == "" || password == "" {
		m.errMsg = "All fields required"
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return registerRequestMsg{username: username, email: email, password: password}
		},
	)
}

// setError records a failed registration.
func (m *registerModel) setError(msg string) {
	m.submitting = false
	m.errMsg = msg
}

func (m *registerModel) setFocus(focus int) {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
}

func (m registerModel) View() string {
	sections := []string{
		m.theme.Title.Render("Create your SpendGenie account"),
		m.inputs[0].View(),
		m.inputs[1].View(),
		m.inputs[2].View(),
	}

	if m.submitting {
		sections = append(sections, m.theme.StatusPending.Render(m.spinner.View()+" Creating account..."))
	}
	if m.errMsg != "" {
		sections = append(sections, m.theme.StatusError.Render(m.errMsg))
	}

	sections = append(sections, m.theme.Subtitle.Render("enter submit · tab next field · ctrl+n sign in"))

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
