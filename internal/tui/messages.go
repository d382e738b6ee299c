package tui

import (
	"github.com/spendgenie/genie/internal/api"
	"github.com/spendgenie/genie/internal/router"
)

// navigateMsg requests a route change; it always goes through the
// route guard before anything renders.
type navigateMsg struct {
	route router.Route
}

// Request messages are emitted by view models; the top model owns the
// backend and turns them into commands.

// loginRequestMsg asks for a credential exchange.
type loginRequestMsg struct {
	email    string
	password string
}

// registerRequestMsg asks for account creation.
type registerRequestMsg struct {
	username string
	email    string
	password string
}

// fetchRequestMsg asks for an analytics fetch under the given sequence
// number.
type fetchRequestMsg struct {
	filter api.Filter
	seq    uint64
}

// uploadRequestMsg asks for a CSV submission.
type uploadRequestMsg struct {
	path string
}

// chatSendRequestMsg asks for one assistant turn.
type chatSendRequestMsg struct {
	text string
}

// authCheckedMsg signals that the session store's initial backend
// check has settled.
type authCheckedMsg struct{}

// loggedInMsg is the outcome of a credential exchange.
type loggedInMsg struct {
	err      error
	username string
}

// loggedOutMsg signals that the session store cleared local state.
type loggedOutMsg struct{}

// Messages below carry the view generation they were issued under. A
// response that lands after the originating view was left is dropped
// instead of applied.

type analyticsFetchedMsg struct {
	err    error
	result *api.AnalyticsResult
	gen    int
	seq    uint64
}

type summaryFetchedMsg struct {
	err  error
	text string
	gen  int
	seq  uint64
}

type uploadedMsg struct {
	err    error
	result *api.UploadResult
	gen    int
}

// uploadRedirectMsg fires after the fixed confirmation delay.
type uploadRedirectMsg struct {
	gen int
}

type chatRepliedMsg struct {
	err   error
	reply string
	gen   int
}
