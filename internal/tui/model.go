// Package tui implements the terminal front end: a route-driven
// bubbletea program whose views own the client's state machines.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spendgenie/genie/internal/analytics"
	"github.com/spendgenie/genie/internal/api"
	"github.com/spendgenie/genie/internal/router"
	"github.com/spendgenie/genie/internal/session"
	"github.com/spendgenie/genie/internal/tui/themes"
)

// protectedCycle is the navigation order among authenticated views.
var protectedCycle = []router.Route{
	router.RouteDashboard,
	router.RouteUpload,
	router.RouteAnalytics,
	router.RouteChat,
}

// Config holds the dependencies for the TUI.
type Config struct {
	Backend api.Backend
	Store   *session.Store
	Theme   themes.Theme
}

// Model is the top-level program state. It owns the session store, the
// current route, and the process-scoped analytics query; views are
// created fresh on every navigation.
type Model struct {
	backend       api.Backend
	store         *session.Store
	query         *analytics.Query
	theme         themes.Theme
	keymap        KeyMap
	route         router.Route
	loginView     loginModel
	registerView  registerModel
	dashboardView dashboardModel
	uploadView    uploadModel
	analyticsView analyticsModel
	chatView      chatModel
	spinner       spinner.Model
	gen           int
	width         int
	height        int
	ready         bool
	quitting      bool
}

// NewModel creates the program model.
func NewModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	return Model{
		backend: cfg.Backend,
		store:   cfg.Store,
		query:   analytics.NewQuery(),
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		route:   router.RouteRoot,
		spinner: sp,
	}
}

// Init starts the one-time auth check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.checkAuth(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newModel, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authCheckedMsg:
		m.ready = true
		return m.navigateTo(m.route)

	case navigateMsg:
		return m.navigateTo(msg.route)

	case loggedInMsg:
		return m.handleLoggedIn(msg)

	case loggedOutMsg:
		// A later login may be a different user; drop the cache.
		m.query.Invalidate()
		return m.navigateTo(router.RouteLogin)

	case loginRequestMsg:
		return m, m.login(msg.email, msg.password)

	case registerRequestMsg:
		return m, m.register(msg.username, msg.email, msg.password)

	case fetchRequestMsg:
		return m, m.fetchAnalytics(m.gen, msg.seq, msg.filter)

	case uploadRequestMsg:
		return m, m.uploadFile(m.gen, msg.path)

	case chatSendRequestMsg:
		return m, m.sendChat(m.gen, msg.text)

	case analyticsFetchedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.query.Resolve(msg.seq, msg.result, msg.err)
		return m, nil

	case summaryFetchedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.query.ResolveSummary(msg.seq, msg.text, msg.err)
		return m, nil

	case uploadedMsg:
		return m.handleUploaded(msg)

	case uploadRedirectMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.navigateTo(router.RouteAnalytics)

	case chatRepliedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.chatView.resolve(msg.reply, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.ready {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m.delegate(msg)
}

// handleGlobalKeys handles shortcuts that work in any view. The bool
// reports whether the key was consumed.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit, true

	case key.Matches(msg, m.keymap.Logout):
		sess, loading := m.store.Snapshot()
		if loading || !sess.Authenticated {
			return m, nil, true
		}
		return m, m.logout(), true

	case key.Matches(msg, m.keymap.NextView):
		return m, m.cycle(1), true

	case key.Matches(msg, m.keymap.PrevView):
		return m, m.cycle(-1), true
	}

	return m, nil, false
}

// cycle moves to the adjacent view: through the protected set when
// authenticated, between login and register otherwise.
func (m Model) cycle(step int) tea.Cmd {
	sess, loading := m.store.Snapshot()
	if loading {
		return nil
	}

	var target router.Route
	if !sess.Authenticated {
		if m.route == router.RouteLogin {
			target = router.RouteRegister
		} else {
			target = router.RouteLogin
		}
	} else {
		idx := 0
		for i, r := range protectedCycle {
			if r == m.route {
				idx = i
				break
			}
		}
		idx = (idx + step + len(protectedCycle)) % len(protectedCycle)
		target = protectedCycle[idx]
	}

	return func() tea.Msg { return navigateMsg{route: target} }
}

// navigateTo runs the requested route through the guard and, on
// render, constructs the target view. The guard is consulted on every
// navigation; its decisions are never cached.
func (m Model) navigateTo(route router.Route) (Model, tea.Cmd) {
	sess, loading := m.store.Snapshot()

	decision := router.Resolve(route, sess, loading)
	switch decision.Kind {
	case router.KindLoading:
		m.route = route
		return m, nil

	case router.KindRedirect:
		return m.navigateTo(decision.Target)

	case router.KindRender:
		m.gen++
		m.route = decision.Target
		return m.enterView(sess)
	}

	return m, nil
}

// enterView constructs the view for the current route. Views are
// recreated on entry; responses addressed to a previous generation are
// discarded in Update.
func (m Model) enterView(sess session.Session) (Model, tea.Cmd) {
	switch m.route {
	case router.RouteLogin:
		m.loginView = newLoginModel(m.theme)
		return m, nil

	case router.RouteRegister:
		m.registerView = newRegisterModel(m.theme)
		return m, nil

	case router.RouteDashboard:
		m.dashboardView = newDashboardModel(m.theme, sess.Username)
		return m, nil

	case router.RouteUpload:
		m.uploadView = newUploadModel(m.theme)
		return m, nil

	case router.RouteAnalytics:
		m.analyticsView = newAnalyticsModel(m.theme, m.query)
		// Entering the view always refetches with the current filter.
		seq := m.query.Begin()
		return m, tea.Batch(
			m.analyticsView.spinner.Tick,
			m.fetchAnalytics(m.gen, seq, m.query.Filter()),
		)

	case router.RouteChat:
		m.chatView = newChatModel(m.theme, m.width, m.height)
		return m, nil
	}

	return m, nil
}

func (m Model) handleLoggedIn(msg loggedInMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		var apiErr *api.Error
		fallback := "Login failed. Please try again."
		if m.route == router.RouteRegister {
			fallback = "Registration failed. Please try again."
		}
		message := fallback
		if errors.As(msg.err, &apiErr) {
			message = apiErr.UserMessage(fallback)
		}

		if m.route == router.RouteRegister {
			m.registerView.setError(message)
		} else {
			m.loginView.setError(message)
		}
		return m, nil
	}

	m.store.Login(msg.username)
	return m.navigateTo(router.RouteRoot)
}

func (m Model) handleUploaded(msg uploadedMsg) (Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}

	m.uploadView.flow.Resolve(msg.result, msg.err)
	if msg.err != nil {
		return m, nil
	}

	// Hand off to analytics: the cached result is now stale, and the
	// confirmation stays on screen for the fixed delay.
	m.query.Invalidate()
	m.uploadView.markRedirecting()
	return m, scheduleUploadRedirect(m.gen)
}

// delegate forwards a message to the active view.
func (m Model) delegate(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.route {
	case router.RouteLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case router.RouteRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case router.RouteDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case router.RouteUpload:
		m.uploadView, cmd = m.uploadView.Update(msg)
	case router.RouteAnalytics:
		m.analyticsView, cmd = m.analyticsView.Update(msg)
	case router.RouteChat:
		m.chatView, cmd = m.chatView.Update(msg)
	}

	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return m.theme.Box.Render(m.spinner.View() + " Loading SpendGenie...")
	}

	var body string
	switch m.route {
	case router.RouteLogin:
		body = m.loginView.View()
	case router.RouteRegister:
		body = m.registerView.View()
	case router.RouteDashboard:
		body = m.dashboardView.View()
	case router.RouteUpload:
		body = m.uploadView.View()
	case router.RouteAnalytics:
		body = m.analyticsView.View()
	case router.RouteChat:
		body = m.chatView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderNavbar(), body)
}

func (m Model) renderNavbar() string {
	title := m.theme.Bold.Render("🧞 SpendGenie")

	sess, _ := m.store.Snapshot()
	if !sess.Authenticated {
		return m.theme.Box.Render(title)
	}

	var tabs []string
	labels := map[router.Route]string{
		router.RouteDashboard: "Dashboard",
		router.RouteUpload:    "Upload",
		router.RouteAnalytics: "Analytics",
		router.RouteChat:      "Chat",
	}
	for _, r := range protectedCycle {
		label := labels[r]
		if r == m.route {
			tabs = append(tabs, m.theme.Selected.Render(" "+label+" "))
		} else {
			tabs = append(tabs, m.theme.Normal.Render(" "+label+" "))
		}
	}

	welcome := m.theme.Subtitle.Render("Welcome, " + sess.Username + "!  ctrl+n/ctrl+p switch · ctrl+o log out · ctrl+c quit")

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", lipgloss.JoinHorizontal(lipgloss.Center, tabs...)),
		welcome,
	))
}
