package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/chat"
	"github.com/spendgenie/genie/internal/tui/themes"
)

// chatModel is the assistant conversation view. The transcript lives
// for one visit; navigating away discards it.
type chatModel struct {
	session  *chat.Session
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	theme    themes.Theme
	quick    int
	width    int
	height   int
}

func newChatModel(theme themes.Theme, width, height int) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask me anything about your expenses..."
	input.CharLimit = 500
	input.Width = 60
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	vp := viewport.New(max(width-4, 40), max(height-10, 8))

	m := chatModel{
		theme:    theme,
		session:  chat.NewSession(),
		input:    input,
		viewport: vp,
		spinner:  sp,
		quick:    -1,
		width:    width,
		height:   height,
	}
	m.refreshTranscript()
	return m
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.send()
		case "tab":
			// Quick questions only prefill the input.
			questions := chat.QuickQuestions()
			m.quick = (m.quick + 1) % len(questions)
			m.input.SetValue(questions[m.quick])
			m.input.CursorEnd()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 40)
		m.viewport.Height = max(msg.Height-10, 8)
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if m.session.Pending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.session.Pending() {
		// Input is disabled while a reply is outstanding.
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) send() (chatModel, tea.Cmd) {
	text, err := m.session.Send(m.input.Value())
	if err != nil {
		return m, nil
	}

	m.input.SetValue("")
	m.refreshTranscript()
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return chatSendRequestMsg{text: text} },
	)
}

// resolve settles the pending turn and scrolls to the newest reply.
func (m *chatModel) resolve(reply string, err error) {
	m.session.Resolve(reply, err)
	m.refreshTranscript()
}

func (m *chatModel) refreshTranscript() {
	userStyle := m.theme.StatusInfo
	assistantStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary).Bold(true)
	body := m.theme.Normal.Width(m.viewport.Width - 8)

	var lines []string
	for _, turn := range m.session.Transcript() {
		label := assistantStyle.Render("Genie")
		if turn.Role == chat.RoleUser {
			label = userStyle.Render("You")
		}
		lines = append(lines, label+"\n"+body.Render(turn.Text)+"\n")
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	sections := []string{
		m.theme.Title.Render("AI Chat Assistant"),
		m.theme.BorderedBox.Render(m.viewport.View()),
	}

	if m.session.Pending() {
		sections = append(sections, m.theme.StatusPending.Render(m.spinner.View()+" Genie is typing..."))
	}

	sections = append(sections,
		m.input.View(),
		m.theme.Subtitle.Render("enter send · tab quick question · pgup/pgdn scroll"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
