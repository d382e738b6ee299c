package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/tui/themes"
)

// loginModel is the credential entry view.
type loginModel struct {
	errMsg     string
	inputs     []textinput.Model
	spinner    spinner.Model
	theme      themes.Theme
	focus      int
	submitting bool
}

func newLoginModel(theme themes.Theme) loginModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 120
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return loginModel{
		theme:   theme,
		inputs:  []textinput.Model{email, password},
		spinner: sp,
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
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

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()

	if email == "" || password == "" {
		m.errMsg = "Email and password required"
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return loginRequestMsg{email: email, password: password} },
	)
}

// setError records a failed credential exchange.
func (m *loginModel) setError(msg string) {
	m.submitting = false
	m.errMsg = msg
}

func (m *loginModel) setFocus(focus int) {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
}

func (m loginModel) View() string {
	sections := []string{
		m.theme.Title.Render("Sign in to SpendGenie"),
		m.inputs[0].View(),
		m.inputs[1].View(),
	}

	if m.submitting {
		sections = append(sections, m.theme.StatusPending.Render(m.spinner.View()+" Signing in..."))
	}
	if m.errMsg != "" {
		sections = append(sections, m.theme.StatusError.Render(m.errMsg))
	}

	sections = append(sections, m.theme.Subtitle.Render("enter submit · tab next field · ctrl+n register"))

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
