// Package router decides which view a navigation request lands on.
//
// Resolve is a pure function of the requested route and the current
// session; it caches nothing and is re-evaluated on every navigation
// and every session change.
package router

import "github.com/spendgenie/genie/internal/session"

// Route identifies one of the client's views.
type Route string

// The client-visible routes.
const (
	RouteRoot      Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
	RouteUpload    Route = "/upload"
	RouteAnalytics Route = "/analytics"
	RouteChat      Route = "/chat"
)

// DefaultProtected is where authenticated users land by default.
const DefaultProtected = RouteDashboard

// Kind classifies a guard decision.
type Kind int

const (
	// KindLoading means the initial auth check is still in flight;
	// render a loading indicator, neither a public nor protected view.
	KindLoading Kind = iota
	// KindRender means the requested route may be shown.
	KindRender
	// KindRedirect means navigation must go to Target instead.
	KindRedirect
)

// Decision is the outcome of resolving one navigation request.
type Decision struct {
	Target Route
	Kind   Kind
}

// IsProtected reports whether a route requires authentication.
func IsProtected(route Route) bool {
	switch route {
	case RouteDashboard, RouteUpload, RouteAnalytics, RouteChat:
		return true
	default:
		return false
	}
}

// Known reports whether the route is part of the client surface.
func Known(route Route) bool {
	switch route {
	case RouteRoot, RouteLogin, RouteRegister, RouteDashboard, RouteUpload, RouteAnalytics, RouteChat:
		return true
	default:
		return false
	}
}

// Resolve maps a navigation request onto a render or redirect decision.
func Resolve(requested Route, sess session.Session, loading bool) Decision {
	if loading {
		return Decision{Kind: KindLoading}
	}

	switch {
	case requested == RouteRoot:
		if sess.Authenticated {
			return Decision{Kind: KindRedirect, Target: DefaultProtected}
		}
		return Decision{Kind: KindRedirect, Target: RouteLogin}

	case requested == RouteLogin || requested == RouteRegister:
		if sess.Authenticated {
			return Decision{Kind: KindRedirect, Target: DefaultProtected}
		}
		return Decision{Kind: KindRender, Target: requested}

	case IsProtected(requested):
		if !sess.Authenticated {
			return Decision{Kind: KindRedirect, Target: RouteLogin}
		}
		return Decision{Kind: KindRender, Target: requested}

	default:
		return Decision{Kind: KindRender, Target: requested}
	}
}
