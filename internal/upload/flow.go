// Package upload owns the CSV upload flow: client-side file
// validation, submission state, and the handoff into analytics.
package upload

import (
	"errors"
	"strings"
	"time"

	"github.com/spendgenie/genie/internal/api"
	"github.com/spendgenie/genie/internal/common"
)

// User-facing messages.
const (
	MsgNotCSV          = "Please select a CSV file"
	MsgNoFileChosen    = "Please select a file first"
	FallbackUploadMsg  = "Upload failed. Please try again."
	// RedirectDelay is how long the confirmation stays on screen before
	// the client moves to the analytics view. Fixed, not cancellable.
	RedirectDelay = 2 * time.Second
)

// Flow is the upload state machine, driven from the UI event loop.
type Flow struct {
	info      *api.UploadResult
	fileName  string
	errMsg    string
	fileSize  int64
	uploading bool
}

// NewFlow creates an idle flow with no file selected.
func NewFlow() *Flow {
	return &Flow{}
}

// Select validates a chosen file by name. Only a ".csv" suffix check —
// no content sniffing. Rejection drops any prior selection.
func (f *Flow) Select(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		f.fileName = ""
		f.fileSize = 0
		f.errMsg = MsgNotCSV
		return common.ErrNotCSV
	}

	f.fileName = name
	f.fileSize = size
	f.errMsg = ""
	f.info = nil
	return nil
}

// Selected returns the currently selected file, if any.
func (f *Flow) Selected() (string, int64, bool) {
	return f.fileName, f.fileSize, f.fileName != ""
}

// Uploading reports whether a submission is in flight.
func (f *Flow) Uploading() bool { return f.uploading }

// ErrorMessage returns the current validation or upload error.
func (f *Flow) ErrorMessage() string { return f.errMsg }

// Info returns the confirmation details of the last successful upload.
func (f *Flow) Info() *api.UploadResult { return f.info }

// Begin transitions into the uploading state. It is guarded: without a
// selected file it records a validation error and reports failure, and
// an in-flight submission cannot be doubled.
func (f *Flow) Begin() error {
	if f.fileName == "" {
		f.errMsg = MsgNoFileChosen
		return common.ErrNoFileChosen
	}
	if f.uploading {
		return common.ErrReplyPending
	}

	f.uploading = true
	f.errMsg = ""
	f.info = nil
	return nil
}

// Resolve settles the submission. The uploading state always clears,
// whatever the outcome. On failure the selection is retained so the
// user can retry without reselecting; on success only the returned
// confirmation survives.
func (f *Flow) Resolve(info *api.UploadResult, err error) {
	f.uploading = false

	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			f.errMsg = apiErr.UserMessage(FallbackUploadMsg)
		} else {
			f.errMsg = FallbackUploadMsg
		}
		return
	}

	f.info = info
	f.fileName = ""
	f.fileSize = 0
	f.errMsg = ""
}
