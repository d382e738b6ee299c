// Package chat owns the conversational session with the assistant
// backend: the ordered transcript, turn submission, and pending state.
package chat

import (
	"strings"

	"github.com/spendgenie/genie/internal/common"
)

// Transcript strings.
const (
	Greeting = "Hi! I'm SpendGenie AI. Ask me about your spending patterns, budgeting tips, or predictions!"
	// Apology is folded into the transcript when a turn fails; chat
	// failures never get a separate error banner, so the conversation
	// can continue uninterrupted.
	Apology = "Sorry, I encountered an error. Please try again."
)

// Role distinguishes who produced a turn.
type Role int

const (
	// RoleUser marks a turn typed by the user.
	RoleUser Role = iota
	// RoleAssistant marks a reply from the assistant backend.
	RoleAssistant
)

// Turn is one transcript entry.
type Turn struct {
	Text string
	Role Role
}

// Session is an append-only transcript plus turn-taking state. Turns
// are strictly FIFO: a new Send is rejected while a reply is pending,
// so replies always land in issue order. Never persisted across runs.
type Session struct {
	turns   []Turn
	pending bool
}

// NewSession creates a transcript seeded with the assistant greeting.
func NewSession() *Session {
	return &Session{
		turns: []Turn{{Role: RoleAssistant, Text: Greeting}},
	}
}

// Transcript returns a copy of the turns in order.
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Pending reports whether a reply is outstanding. Views use this to
// disable input and show a typing indicator.
func (s *Session) Pending() bool { return s.pending }

// Send validates and records a user turn. Blank input is a no-op, and
// a turn cannot be sent while a reply is pending. On success it returns
// the trimmed text to submit to the backend; the user turn is already
// appended so it is visible immediately.
func (s *Session) Send(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", common.ErrEmptyMessage
	}
	if s.pending {
		return "", common.ErrReplyPending
	}

	s.turns = append(s.turns, Turn{Role: RoleUser, Text: trimmed})
	s.pending = true
	return trimmed, nil
}

// Resolve appends the assistant's reply — the fixed apology when the
// call failed — and clears the pending state unconditionally.
func (s *Session) Resolve(reply string, err error) {
	s.pending = false

	if err != nil {
		s.turns = append(s.turns, Turn{Role: RoleAssistant, Text: Apology})
		return
	}
	s.turns = append(s.turns, Turn{Role: RoleAssistant, Text: reply})
}

// QuickQuestions are shortcuts that prefill the input; they go through
// Send like any typed message.
func QuickQuestions() []string {
	return []string{
		"What are my top categories?",
		"Show me monthly trend",
		"How can I save money?",
		"Predict next month",
	}
}
