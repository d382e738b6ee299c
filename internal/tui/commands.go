package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spendgenie/genie/internal/api"
	"github.com/spendgenie/genie/internal/upload"
)

const requestTimeout = 30 * time.Second

// checkAuth runs the session store's one-time backend check.
func (m Model) checkAuth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		m.store.Initialize(ctx)
		return authCheckedMsg{}
	}
}

// login exchanges credentials for a session cookie.
func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		username, err := m.backend.Login(ctx, email, password)
		return loggedInMsg{username: username, err: err}
	}
}

// register creates an account; the backend logs the new user in.
func (m Model) register(username, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := m.backend.Register(ctx, username, email, password)
		return loggedInMsg{username: user, err: err}
	}
}

// logout clears the session; the store swallows backend failures.
func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		m.store.Logout(ctx)
		return loggedOutMsg{}
	}
}

// fetchAnalytics issues one analytics fetch plus its summary sidecar.
func (m Model) fetchAnalytics(gen int, seq uint64, filter api.Filter) tea.Cmd {
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := m.backend.Analytics(ctx, filter)
		return analyticsFetchedMsg{gen: gen, seq: seq, result: result, err: err}
	}
	summary := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		text, err := m.backend.Summary(ctx, filter)
		return summaryFetchedMsg{gen: gen, seq: seq, text: text, err: err}
	}
	return tea.Batch(fetch, summary)
}

// uploadFile submits the selected CSV as a multipart body.
func (m Model) uploadFile(gen int, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		file, err := os.Open(path)
		if err != nil {
			return uploadedMsg{gen: gen, err: err}
		}
		defer func() { _ = file.Close() }()

		result, err := m.backend.Upload(ctx, filepath.Base(path), file)
		return uploadedMsg{gen: gen, result: result, err: err}
	}
}

// scheduleUploadRedirect fires the fixed post-upload transition into
// the analytics view.
func scheduleUploadRedirect(gen int) tea.Cmd {
	return tea.Tick(upload.RedirectDelay, func(time.Time) tea.Msg {
		return uploadRedirectMsg{gen: gen}
	})
}

// sendChat submits one user turn to the assistant backend.
func (m Model) sendChat(gen int, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reply, err := m.backend.Chat(ctx, text)
		return chatRepliedMsg{gen: gen, reply: reply, err: err}
	}
}

