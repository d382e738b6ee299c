package api

import (
	"context"
	"io"
)

// MockBackend is a mock implementation of Backend for testing.
type MockBackend struct {
	// Functions that can be set by tests to control behavior
	AuthStatusFn func(ctx context.Context) (AuthStatus, error)
	LoginFn      func(ctx context.Context, email, password string) (string, error)
	RegisterFn   func(ctx context.Context, username, email, password string) (string, error)
	LogoutFn     func(ctx context.Context) error
	AnalyticsFn  func(ctx context.Context, filter Filter) (*AnalyticsResult, error)
	SummaryFn    func(ctx context.Context, filter Filter) (string, error)
	UploadFn     func(ctx context.Context, filename string, data io.Reader) (*UploadResult, error)
	ChatFn       func(ctx context.Context, message string) (string, error)

	// Call tracking
	AnalyticsCalls  []Filter
	ChatCalls       []string
	UploadCalls     []string
	AuthStatusCalls int
	LogoutCalls     int
}

// NewMockBackend creates a new mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// AuthStatus implements Backend.AuthStatus.
func (m *MockBackend) AuthStatus(ctx context.Context) (AuthStatus, error) {
	m.AuthStatusCalls++
	if m.AuthStatusFn != nil {
		return m.AuthStatusFn(ctx)
	}
	return AuthStatus{}, nil
}

// Login implements Backend.Login.
func (m *MockBackend) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return "", nil
}

// Register implements Backend.Register.
func (m *MockBackend) Register(ctx context.Context, username, email, password string) (string, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return "", nil
}

// Logout implements Backend.Logout.
func (m *MockBackend) Logout(ctx context.Context) error {
	m.LogoutCalls++
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx)
	}
	return nil
}

// Analytics implements Backend.Analytics.
func (m *MockBackend) Analytics(ctx context.Context, filter Filter) (*AnalyticsResult, error) {
	m.AnalyticsCalls = append(m.AnalyticsCalls, filter)
	if m.AnalyticsFn != nil {
		return m.AnalyticsFn(ctx, filter)
	}
	return &AnalyticsResult{}, nil
}

// Summary implements Backend.Summary.
func (m *MockBackend) Summary(ctx context.Context, filter Filter) (string, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, filter)
	}
	return "", nil
}

// Upload implements Backend.Upload.
func (m *MockBackend) Upload(ctx context.Context, filename string, data io.Reader) (*UploadResult, error) {
	m.UploadCalls = append(m.UploadCalls, filename)
	if m.UploadFn != nil {
		return m.UploadFn(ctx, filename, data)
	}
	return &UploadResult{}, nil
}

// Chat implements Backend.Chat.
func (m *MockBackend) Chat(ctx context.Context, message string) (string, error) {
	m.ChatCalls = append(m.ChatCalls, message)
	if m.ChatFn != nil {
		return m.ChatFn(ctx, message)
	}
	return "", nil
}
