package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spendgenie/genie/internal/analytics"
	"github.com/spendgenie/genie/internal/api"
	"github.com/spendgenie/genie/internal/router"
	"github.com/spendgenie/genie/internal/session"
	"github.com/spendgenie/genie/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, backend *api.MockBackend) Model {
	t.Helper()

	return NewModel(Config{
		Backend: backend,
		Store:   session.NewStore(backend),
		Theme:   themes.Default,
	})
}

// settle runs the initial auth check synchronously and applies the
// resulting navigation, leaving the model on its first rendered view.
func settle(t *testing.T, m Model) Model {
	t.Helper()

	m.store.Initialize(context.Background())
	updated, _ := m.Update(authCheckedMsg{})

	result, ok := updated.(Model)
	require.True(t, ok)
	return result
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	result, ok := updated.(Model)
	require.True(t, ok)
	return result, cmd
}

func authedBackend() *api.MockBackend {
	return &api.MockBackend{
		AuthStatusFn: func(_ context.Context) (api.AuthStatus, error) {
			return api.AuthStatus{Authenticated: true, Username: "alice"}, nil
		},
	}
}

func anonBackend() *api.MockBackend {
	return &api.MockBackend{
		AuthStatusFn: func(_ context.Context) (api.AuthStatus, error) {
			return api.AuthStatus{}, nil
		},
	}
}

func TestAuthCheckRoutesAnonymousToLogin(t *testing.T) {
	m := newTestModel(t, anonBackend())
	m = settle(t, m)

	assert.Equal(t, router.RouteLogin, m.route)
}

func TestAuthCheckRoutesAuthenticatedToDashboard(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	assert.Equal(t, router.RouteDashboard, m.route)
}

func TestAuthCheckFailureStillLandsOnLogin(t *testing.T) {
	backend := &api.MockBackend{
		AuthStatusFn: func(_ context.Context) (api.AuthStatus, error) {
			return api.AuthStatus{}, assert.AnError
		},
	}
	m := newTestModel(t, backend)
	m = settle(t, m)

	assert.Equal(t, router.RouteLogin, m.route)
}

func TestLoginSuccessNavigatesToDashboard(t *testing.T) {
	backend := anonBackend()
	backend.LoginFn = func(_ context.Context, _, _ string) (string, error) {
		return "alice", nil
	}
	m := newTestModel(t, backend)
	m = settle(t, m)

	_, cmd := apply(t, m, loginRequestMsg{email: "alice@example.com", password: "hunter2"})
	require.NotNil(t, cmd)

	m, _ = apply(t, m, cmd())

	assert.Equal(t, router.RouteDashboard, m.route)
	sess, loading := m.store.Snapshot()
	assert.False(t, loading)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "alice", sess.Username)
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	backend := anonBackend()
	backend.LoginFn = func(_ context.Context, _, _ string) (string, error) {
		return "", &api.Error{Message: "Invalid email or password", Status: 401}
	}
	m := newTestModel(t, backend)
	m = settle(t, m)

	_, cmd := apply(t, m, loginRequestMsg{email: "alice@example.com", password: "wrong"})
	require.NotNil(t, cmd)

	m, _ = apply(t, m, cmd())

	assert.Equal(t, router.RouteLogin, m.route)
	assert.Equal(t, "Invalid email or password", m.loginView.errMsg)
	sess, _ := m.store.Snapshot()
	assert.False(t, sess.Authenticated)
}

func TestRegisterFailureUsesRegisterFallback(t *testing.T) {
	backend := anonBackend()
	m := newTestModel(t, backend)
	m = settle(t, m)

	m, _ = apply(t, m, navigateMsg{route: router.RouteRegister})
	require.Equal(t, router.RouteRegister, m.route)

	m, _ = apply(t, m, loggedInMsg{err: assert.AnError})

	assert.Equal(t, "Registration failed. Please try again.", m.registerView.errMsg)
}

func TestNavigationBeginsAnalyticsFetch(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	m, cmd := apply(t, m, navigateMsg{route: router.RouteAnalytics})

	assert.Equal(t, router.RouteAnalytics, m.route)
	assert.Equal(t, analytics.StateLoading, m.query.State())
	assert.NotNil(t, cmd)
}

func TestStaleGenerationResponsesDropped(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	m, _ = apply(t, m, navigateMsg{route: router.RouteAnalytics})
	staleGen := m.gen

	// Navigating away bumps the generation; the in-flight response now
	// addresses a view that no longer exists.
	m, _ = apply(t, m, navigateMsg{route: router.RouteChat})
	require.NotEqual(t, staleGen, m.gen)

	m, _ = apply(t, m, analyticsFetchedMsg{
		gen:    staleGen,
		seq:    1,
		result: &api.AnalyticsResult{},
	})

	assert.Nil(t, m.query.Result())
}

func TestChatReplyForOldGenerationDropped(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	m, _ = apply(t, m, navigateMsg{route: router.RouteChat})
	staleGen := m.gen
	turnsBefore := len(m.chatView.session.Transcript())

	m, _ = apply(t, m, navigateMsg{route: router.RouteDashboard})
	m, _ = apply(t, m, navigateMsg{route: router.RouteChat})

	m, _ = apply(t, m, chatRepliedMsg{gen: staleGen, reply: "too late"})

	// The fresh session is untouched; only the greeting is present.
	assert.Len(t, m.chatView.session.Transcript(), turnsBefore)
}

func TestUploadSuccessInvalidatesAnalyticsAndSchedulesRedirect(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	// Prime the cache so invalidation is observable.
	m, _ = apply(t, m, navigateMsg{route: router.RouteAnalytics})
	m, _ = apply(t, m, analyticsFetchedMsg{gen: m.gen, seq: 1, result: &api.AnalyticsResult{}})
	require.Equal(t, analytics.StateReady, m.query.State())

	m, _ = apply(t, m, navigateMsg{route: router.RouteUpload})

	m, cmd := apply(t, m, uploadedMsg{
		gen:    m.gen,
		result: &api.UploadResult{Message: "File uploaded and processed successfully", Rows: 12},
	})

	assert.Equal(t, analytics.StateIdle, m.query.State())
	assert.True(t, m.uploadView.redirect)
	assert.NotNil(t, cmd)
}

func TestUploadFailureStaysOnUploadView(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	m, _ = apply(t, m, navigateMsg{route: router.RouteUpload})

	m, cmd := apply(t, m, uploadedMsg{
		gen: m.gen,
		err: &api.Error{Message: "No file part", Status: 400},
	})

	assert.Equal(t, router.RouteUpload, m.route)
	assert.False(t, m.uploadView.redirect)
	assert.Nil(t, cmd)
	assert.Equal(t, "No file part", m.uploadView.flow.ErrorMessage())
}

func TestUploadRedirectLandsOnAnalytics(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	m, _ = apply(t, m, navigateMsg{route: router.RouteUpload})

	m, _ = apply(t, m, uploadRedirectMsg{gen: m.gen})

	assert.Equal(t, router.RouteAnalytics, m.route)
	assert.Equal(t, analytics.StateLoading, m.query.State())
}

func TestProtectedRouteRedirectsAnonymousToLogin(t *testing.T) {
	m := newTestModel(t, anonBackend())
	m = settle(t, m)

	m, _ = apply(t, m, navigateMsg{route: router.RouteAnalytics})

	assert.Equal(t, router.RouteLogin, m.route)
}

func TestCycleMovesThroughProtectedViews(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)
	require.Equal(t, router.RouteDashboard, m.route)

	cmd := m.cycle(1)
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())
	assert.Equal(t, router.RouteUpload, m.route)

	cmd = m.cycle(-1)
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())
	assert.Equal(t, router.RouteDashboard, m.route)
}

func TestCycleTogglesLoginAndRegister(t *testing.T) {
	m := newTestModel(t, anonBackend())
	m = settle(t, m)
	require.Equal(t, router.RouteLogin, m.route)

	cmd := m.cycle(1)
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())
	assert.Equal(t, router.RouteRegister, m.route)

	cmd = m.cycle(1)
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())
	assert.Equal(t, router.RouteLogin, m.route)
}

func TestLogoutClearsSessionAndLandsOnLogin(t *testing.T) {
	m := newTestModel(t, authedBackend())
	m = settle(t, m)

	// Run the logout command so the store clears before the resulting
	// message navigates; the guard would bounce an authed session back.
	cmd := m.logout()
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())

	assert.Equal(t, router.RouteLogin, m.route)
	sess, _ := m.store.Snapshot()
	assert.False(t, sess.Authenticated)
}
