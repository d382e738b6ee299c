package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/analytics"
	"github.com/spendgenie/genie/internal/api"
	"github.com/spendgenie/genie/internal/tui/themes"
)

// analyticsModel is the charts-and-filters view. The query itself is
// owned by the top model so its cached result outlives navigation;
// this view edits the filter and renders whatever the query holds.
type analyticsModel struct {
	query   *analytics.Query
	inputs  []textinput.Model
	spinner spinner.Model
	theme   themes.Theme
	focus   int
}

var filterLabels = []string{"Year", "Month", "Start", "End"}

func newAnalyticsModel(theme themes.Theme, query *analytics.Query) analyticsModel {
	placeholders := []string{"2024", "1-12", "2024-01-01", "2024-12-31"}

	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 10
		in.Width = 12
		inputs[i] = in
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := analyticsModel{
		theme:   theme,
		query:   query,
		inputs:  inputs,
		spinner: sp,
	}
	m.syncInputs()
	return m
}

// syncInputs reflects the query's current filter into the inputs.
func (m *analyticsModel) syncInputs() {
	filter := m.query.Filter()
	if filter.Year != nil {
		m.inputs[0].SetValue(strconv.Itoa(*filter.Year))
	}
	if filter.Month != nil {
		m.inputs[1].SetValue(strconv.Itoa(*filter.Month))
	}
	if filter.Start != nil {
		m.inputs[2].SetValue(filter.Start.Format("2006-01-02"))
	}
	if filter.End != nil {
		m.inputs[3].SetValue(filter.End.Format("2006-01-02"))
	}
}

func (m analyticsModel) Update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "left":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "enter":
			return m.apply()
		case "ctrl+r":
			return m.reset()
		}

	case spinner.TickMsg:
		if m.query.State() == analytics.StateLoading {
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

// apply replaces the filter from the inputs and issues one fetch.
func (m analyticsModel) apply() (analyticsModel, tea.Cmd) {
	filter := m.parseFilter()
	seq := m.query.Apply(filter)
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return fetchRequestMsg{seq: seq, filter: filter} },
	)
}

// reset clears every filter field and fetches the unfiltered view.
func (m analyticsModel) reset() (analyticsModel, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	seq := m.query.Reset()
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return fetchRequestMsg{seq: seq, filter: api.Filter{}} },
	)
}

// parseFilter reads the inputs; unparsable values count as absent.
func (m analyticsModel) parseFilter() api.Filter {
	var filter api.Filter

	if year, err := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value())); err == nil {
		filter.Year = &year
	}
	if month, err := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value())); err == nil {
		filter.Month = &month
	}
	if start, err := time.Parse("2006-01-02", strings.TrimSpace(m.inputs[2].Value())); err == nil {
		filter.Start = &start
	}
	if end, err := time.Parse("2006-01-02", strings.TrimSpace(m.inputs[3].Value())); err == nil {
		filter.End = &end
	}

	return filter
}

func (m *analyticsModel) setFocus(focus int) {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
}

func (m analyticsModel) View() string {
	sections := []string{m.theme.Title.Render("Expense Analytics")}

	// A failed fetch suppresses the charts entirely.
	if m.query.State() == analytics.StateFailed {
		sections = append(sections,
			m.theme.StatusError.Render(m.query.ErrorMessage()),
			m.theme.Normal.Render("Upload a CSV file to get started (switch to the Upload view with ctrl+p)."),
		)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.renderFilters())

	if m.query.State() == analytics.StateLoading {
		sections = append(sections, m.theme.StatusPending.Render(m.spinner.View()+" Loading analytics..."))
	}

	// The previous result stays visible until the next fetch resolves.
	if result := m.query.Result(); result != nil {
		sections = append(sections,
			m.renderSummary(result.Summary),
			m.renderMonthly(result.Monthly),
			m.renderCategories(result.Category),
		)
		if text := m.query.Summary(); text != "" {
			sections = append(sections, m.theme.BorderedBox.Render(m.theme.Normal.Render(text)))
		}
	}

	sections = append(sections, m.theme.Subtitle.Render("enter apply filters · ctrl+r reset · tab next field"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m analyticsModel) renderFilters() string {
	var fields []string
	for i, in := range m.inputs {
		fields = append(fields, lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Subtitle.Render(filterLabels[i]),
			in.View(),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, fields...)
}

func (m analyticsModel) renderSummary(s api.Summary) string {
	card := m.theme.BorderedBox.Width(26)

	topCategory := s.TopCategory
	if topCategory == "" {
		topCategory = "N/A"
	}
	peakDay := s.PeakDay
	if peakDay == "" {
		peakDay = "N/A"
	}

	cards := []string{
		card.Render(m.theme.Subtitle.Render("Total Spending") + "\n" + m.theme.Bold.Render(formatAmount(s.Total))),
		card.Render(m.theme.Subtitle.Render("Top Category") + "\n" + m.theme.Bold.Render(topCategory)),
		card.Render(m.theme.Subtitle.Render("Peak Day") + "\n" + m.theme.Bold.Render(formatAmount(s.PeakAmount)) + "\n" + m.theme.Normal.Render(peakDay)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m analyticsModel) renderMonthly(monthly []api.MonthlyPoint) string {
	if len(monthly) == 0 {
		return ""
	}

	maxAmount := 0.0
	for _, p := range monthly {
		if p.Amount > maxAmount {
			maxAmount = p.Amount
		}
	}

	lines := []string{m.theme.Bold.Render("Monthly Trend")}
	for _, p := range monthly {
		lines = append(lines, fmt.Sprintf("%-8s %s %s",
			p.MonthYear,
			m.theme.Bar.Render(bar(p.Amount, maxAmount, 30)),
			m.theme.Normal.Render(formatAmount(p.Amount)),
		))
	}
	return strings.Join(lines, "\n")
}

func (m analyticsModel) renderCategories(categories []api.CategoryTotal) string {
	if len(categories) == 0 {
		return ""
	}

	maxAmount := categories[0].Amount
	lines := []string{m.theme.Bold.Render("Top Categories")}
	for i, c := range categories {
		if i >= 10 {
			break
		}
		lines = append(lines, fmt.Sprintf("%-16s %s %s",
			truncate(c.Category, 16),
			m.theme.Bar.Render(bar(c.Amount, maxAmount, 24)),
			m.theme.Normal.Render(formatAmount(c.Amount)),
		))
	}
	return strings.Join(lines, "\n")
}

func bar(amount, maxAmount float64, width int) string {
	if maxAmount <= 0 {
		return ""
	}
	n := int(amount / maxAmount * float64(width))
	if n < 1 && amount > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
