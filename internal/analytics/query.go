// Package analytics owns the filter-and-refetch pipeline for the
// aggregated spending view.
//
// Query is a state machine driven from the UI event loop: Begin issues
// a fetch and hands back a sequence number, Resolve applies the
// outcome. Overlapping fetches are settled latest-issued-wins — a slow
// early response can never overwrite data from a later request.
package analytics

import (
	"errors"

	"github.com/spendgenie/genie/internal/api"
)

// FallbackFetchMessage is shown when the backend gives no error detail.
const FallbackFetchMessage = "Failed to fetch analytics"

// State is the query's position in Idle → Loading → Ready | Failed.
type State int

const (
	// StateIdle means no fetch has been issued since creation or the
	// last invalidation.
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateReady means the latest fetch succeeded and Result is set.
	StateReady
	// StateFailed means the latest fetch failed; charts are suppressed
	// and ErrorMessage carries the user-facing text.
	StateFailed
)

// Query holds the filter parameters and the latest settled result.
// All transitions happen on the UI event loop; there is no internal
// locking.
type Query struct {
	result  *api.AnalyticsResult
	errMsg  string
	summary string
	filter  api.Filter
	seq     uint64
	state   State
}

// NewQuery creates an idle query with an empty filter.
func NewQuery() *Query {
	return &Query{state: StateIdle}
}

// State returns the current machine state.
func (q *Query) State() State { return q.state }

// Filter returns the current filter parameters.
func (q *Query) Filter() api.Filter { return q.filter }

// Result returns the latest successful result, or nil before the first
// fetch resolves.
func (q *Query) Result() *api.AnalyticsResult { return q.result }

// ErrorMessage returns the user-facing message of the latest failure.
func (q *Query) ErrorMessage() string { return q.errMsg }

// Summary returns the AI text summary riding alongside the result.
func (q *Query) Summary() string { return q.summary }

// Begin transitions to Loading and returns the sequence number the
// caller must pass back to Resolve. The previous result stays visible
// until the fetch settles.
func (q *Query) Begin() uint64 {
	q.seq++
	q.state = StateLoading
	return q.seq
}

// Apply replaces the filter immediately and issues a fetch. Each apply
// action is exactly one fetch; rapid applies are not coalesced.
func (q *Query) Apply(filter api.Filter) uint64 {
	q.filter = filter
	return q.Begin()
}

// Reset clears every filter field and fetches the unfiltered view.
func (q *Query) Reset() uint64 {
	q.filter = api.Filter{}
	return q.Begin()
}

// Resolve settles the fetch identified by seq. Responses from
// superseded requests are discarded; the bool reports whether the
// outcome was applied.
func (q *Query) Resolve(seq uint64, result *api.AnalyticsResult, err error) bool {
	if seq != q.seq {
		return false
	}

	if err != nil {
		q.state = StateFailed
		q.result = nil
		q.errMsg = userMessage(err)
		return true
	}

	q.state = StateReady
	q.result = result
	q.errMsg = ""
	return true
}

// ResolveSummary attaches the AI summary for the fetch identified by
// seq. Summary failures are non-blocking: the text just stays empty.
func (q *Query) ResolveSummary(seq uint64, summary string, err error) bool {
	if seq != q.seq {
		return false
	}
	if err != nil {
		q.summary = ""
		return true
	}
	q.summary = summary
	return true
}

// Invalidate drops the cached result so the next entry into the view
// refetches. Used by the upload flow's handoff.
func (q *Query) Invalidate() {
	q.seq++
	q.state = StateIdle
	q.result = nil
	q.errMsg = ""
	q.summary = ""
}

func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage(FallbackFetchMessage)
	}
	return FallbackFetchMessage
}
