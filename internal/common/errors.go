// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Component guard errors.
	ErrNoFileChosen = errors.New("no file chosen")
	ErrNotCSV       = errors.New("not a CSV file")
	ErrEmptyMessage = errors.New("empty message")
	ErrReplyPending = errors.New("reply pending")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)
