package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/tui/themes"
)

// dashboardModel is the landing view for authenticated users.
type dashboardModel struct {
	username string
	theme    themes.Theme
	width    int
}

func newDashboardModel(theme themes.Theme, username string) dashboardModel {
	return dashboardModel{theme: theme, username: username}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
	}
	return m, nil
}

func (m dashboardModel) View() string {
	features := []struct {
		title string
		body  string
	}{
		{"Analytics", "Detailed insights into your spending patterns"},
		{"AI Assistant", "Personalized financial advice and spending tips"},
		{"Predictions", "Forecasts of future expenses from historical data"},
		{"Budget Tracking", "Monitor spending by category"},
	}

	card := m.theme.BorderedBox.Width(34)
	var cards []string
	for _, f := range features {
		cards = append(cards, card.Render(
			m.theme.Bold.Render(f.title)+"\n"+m.theme.Normal.Render(f.body),
		))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]),
	)

	steps := []string{
		"1. Upload your expense CSV in the Upload view",
		"2. Explore charts and totals in Analytics",
		"3. Ask the AI assistant for personalized tips",
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Welcome to SpendGenie, "+m.username+"!"),
		m.theme.Subtitle.Render("Your personal expense tracking companion"),
		grid,
		m.theme.Bold.Render("Quick start"),
		m.theme.Normal.Render(steps[0]+"\n"+steps[1]+"\n"+steps[2]),
	)
}
