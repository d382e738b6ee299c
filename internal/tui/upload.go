package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/config"
	"github.com/spendgenie/genie/internal/tui/themes"
	"github.com/spendgenie/genie/internal/upload"
)

// uploadModel is the CSV upload view. File selection and submission
// are separate steps: enter selects (validates the name), ctrl+s
// submits the selection.
type uploadModel struct {
	flow     *upload.Flow
	path     string
	input    textinput.Model
	spinner  spinner.Model
	theme    themes.Theme
	statErr  string
	redirect bool
}

func newUploadModel(theme themes.Theme) uploadModel {
	input := textinput.New()
	input.Placeholder = "Path to CSV file (e.g. ~/expenses.csv)"
	input.CharLimit = 512
	input.Width = 56
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return uploadModel{
		theme:   theme,
		flow:    upload.NewFlow(),
		input:   input,
		spinner: sp,
	}
}

func (m uploadModel) Update(msg tea.Msg) (uploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.flow.Uploading() || m.redirect {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			m.selectFile()
			return m, nil
		case "ctrl+s":
			return m.submit()
		}

	case spinner.TickMsg:
		if m.flow.Uploading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selectFile resolves the typed path and runs the flow's name check.
func (m *uploadModel) selectFile() {
	path := config.ExpandPath(strings.TrimSpace(m.input.Value()))
	if path == "" {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		m.statErr = "File not found: " + path
		return
	}
	m.statErr = ""

	if m.flow.Select(filepath.Base(path), info.Size()) == nil {
		m.path = path
	}
}

func (m uploadModel) submit() (uploadModel, tea.Cmd) {
	if err := m.flow.Begin(); err != nil {
		return m, nil
	}
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return uploadRequestMsg{path: m.path} },
	)
}

// markRedirecting freezes the view while the confirmation is shown.
func (m *uploadModel) markRedirecting() {
	m.redirect = true
}

func (m uploadModel) View() string {
	sections := []string{
		m.theme.Title.Render("Upload Your Expense Data"),
		m.theme.Subtitle.Render("Upload a CSV file containing your transaction data"),
		m.input.View(),
	}

	if name, size, ok := m.flow.Selected(); ok {
		sections = append(sections, m.theme.Normal.Render(
			fmt.Sprintf("Selected: %s (%.2f KB)", name, float64(size)/1024),
		))
	}

	if m.flow.Uploading() {
		sections = append(sections, m.theme.StatusPending.Render(m.spinner.View()+" Uploading..."))
	}

	if m.statErr != "" {
		sections = append(sections, m.theme.StatusError.Render(m.statErr))
	} else if msg := m.flow.ErrorMessage(); msg != "" {
		sections = append(sections, m.theme.StatusError.Render(msg))
	}

	if info := m.flow.Info(); info != nil {
		details := []string{
			m.theme.StatusSuccess.Render(info.Message),
			m.theme.Normal.Render(fmt.Sprintf("Rows: %d", info.Rows)),
			m.theme.Normal.Render("Columns: " + strings.Join(info.Columns, ", ")),
		}
		if m.redirect {
			details = append(details, m.theme.StatusPending.Render("Redirecting to analytics..."))
		}
		sections = append(sections, m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, details...)))
	}

	requirements := []string{
		"CSV format requirements:",
		"- a date column (date, transaction_date, ...)",
		"- an amount column (amount, value, ...)",
		"- optional category and description columns",
	}
	sections = append(sections,
		m.theme.Subtitle.Render(strings.Join(requirements, "\n")),
		m.theme.Subtitle.Render("enter select file · ctrl+s upload"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
