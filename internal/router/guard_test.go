package router

import (
	"testing"

	"github.com/spendgenie/genie/internal/session"
	"github.com/stretchr/testify/assert"
)

var (
	anonymous = session.Session{}
	alice     = session.Session{Authenticated: true, Username: "alice"}
)

func TestResolve_LoadingBlocksEverything(t *testing.T) {
	for _, route := range []Route{RouteRoot, RouteLogin, RouteDashboard, RouteChat} {
		decision := Resolve(route, alice, true)
		assert.Equal(t, KindLoading, decision.Kind, "route %s", route)
	}
}

func TestResolve_ProtectedRoutesRedirectWhenUnauthenticated(t *testing.T) {
	for _, route := range []Route{RouteDashboard, RouteUpload, RouteAnalytics, RouteChat} {
		decision := Resolve(route, anonymous, false)
		assert.Equal(t, KindRedirect, decision.Kind, "route %s", route)
		assert.Equal(t, RouteLogin, decision.Target, "route %s", route)
	}
}

func TestResolve_ProtectedRoutesRenderWhenAuthenticated(t *testing.T) {
	for _, route := range []Route{RouteDashboard, RouteUpload, RouteAnalytics, RouteChat} {
		decision := Resolve(route, alice, false)
		assert.Equal(t, KindRender, decision.Kind, "route %s", route)
		assert.Equal(t, route, decision.Target, "route %s", route)
	}
}

func TestResolve_AuthPagesBounceAuthenticatedUsers(t *testing.T) {
	for _, route := range []Route{RouteLogin, RouteRegister} {
		decision := Resolve(route, alice, false)
		assert.Equal(t, KindRedirect, decision.Kind, "route %s", route)
		assert.Equal(t, DefaultProtected, decision.Target, "route %s", route)
	}
}

func TestResolve_AuthPagesRenderForAnonymousUsers(t *testing.T) {
	for _, route := range []Route{RouteLogin, RouteRegister} {
		decision := Resolve(route, anonymous, false)
		assert.Equal(t, KindRender, decision.Kind, "route %s", route)
	}
}

func TestResolve_Root(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
		want Route
	}{
		{name: "authenticated goes to dashboard", sess: alice, want: DefaultProtected},
		{name: "anonymous goes to login", sess: anonymous, want: RouteLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Resolve(RouteRoot, tt.sess, false)
			assert.Equal(t, KindRedirect, decision.Kind)
			assert.Equal(t, tt.want, decision.Target)
		})
	}
}

func TestResolve_Scenarios(t *testing.T) {
	// Login then navigate to upload: rendered, no redirect.
	decision := Resolve(RouteUpload, session.Session{Authenticated: true, Username: "alice"}, false)
	assert.Equal(t, KindRender, decision.Kind)
	assert.Equal(t, RouteUpload, decision.Target)

	// Anonymous requests analytics: bounced to login.
	decision = Resolve(RouteAnalytics, anonymous, false)
	assert.Equal(t, KindRedirect, decision.Kind)
	assert.Equal(t, RouteLogin, decision.Target)
}

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected(RouteDashboard))
	assert.True(t, IsProtected(RouteChat))
	assert.False(t, IsProtected(RouteLogin))
	assert.False(t, IsProtected(RouteRoot))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(RouteRegister))
	assert.False(t, Known(Route("/nope")))
}
