package api

import (
	"context"
	"io"
)

// Backend defines the contract the client core consumes. This interface
// allows for easy mocking in tests and swapping transports.
type Backend interface {
	AuthStatus(ctx context.Context) (AuthStatus, error)
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	Logout(ctx context.Context) error
	Analytics(ctx context.Context, filter Filter) (*AnalyticsResult, error)
	Summary(ctx context.Context, filter Filter) (string, error)
	Upload(ctx context.Context, filename string, data io.Reader) (*UploadResult, error)
	Chat(ctx context.Context, message string) (string, error)
}
