package chat

import (
	"errors"
	"testing"

	"github.com/spendgenie/genie/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_StartsWithGreeting(t *testing.T) {
	s := NewSession()

	turns := s.Transcript()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleAssistant, turns[0].Role)
	assert.Equal(t, Greeting, turns[0].Text)
	assert.False(t, s.Pending())
}

func TestSession_SendBlankIsNoOp(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		s := NewSession()

		_, err := s.Send(input)
		assert.ErrorIs(t, err, common.ErrEmptyMessage, "input %q", input)
		assert.Len(t, s.Transcript(), 1)
		assert.False(t, s.Pending())
	}
}

func TestSession_SendAppendsUserTurnImmediately(t *testing.T) {
	s := NewSession()

	text, err := s.Send("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.True(t, s.Pending())

	turns := s.Transcript()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Equal(t, "hello", turns[1].Text)
}

func TestSession_SendWhilePendingIsRejected(t *testing.T) {
	s := NewSession()
	_, err := s.Send("first")
	require.NoError(t, err)

	_, err = s.Send("second")
	assert.ErrorIs(t, err, common.ErrReplyPending)
	assert.Len(t, s.Transcript(), 2)
}

func TestSession_ResolveSuccess(t *testing.T) {
	s := NewSession()
	_, err := s.Send("hello")
	require.NoError(t, err)

	s.Resolve("Hi! I'm SpendGenie AI.", nil)

	assert.False(t, s.Pending())
	turns := s.Transcript()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Equal(t, "hello", turns[1].Text)
	assert.Equal(t, RoleAssistant, turns[2].Role)
	assert.Equal(t, "Hi! I'm SpendGenie AI.", turns[2].Text)
}

func TestSession_ResolveFailureFoldsApologyIntoTranscript(t *testing.T) {
	s := NewSession()
	_, err := s.Send("hello")
	require.NoError(t, err)

	s.Resolve("", errors.New("backend down"))

	assert.False(t, s.Pending())
	turns := s.Transcript()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleAssistant, turns[2].Role)
	assert.Equal(t, Apology, turns[2].Text)
}

func TestSession_ConversationContinuesAfterFailure(t *testing.T) {
	s := NewSession()

	_, err := s.Send("first")
	require.NoError(t, err)
	s.Resolve("", errors.New("boom"))

	_, err = s.Send("second")
	require.NoError(t, err)
	s.Resolve("better now", nil)

	turns := s.Transcript()
	require.Len(t, turns, 5)
	assert.Equal(t, Apology, turns[2].Text)
	assert.Equal(t, "second", turns[3].Text)
	assert.Equal(t, "better now", turns[4].Text)
}

func TestSession_TranscriptIsACopy(t *testing.T) {
	s := NewSession()
	turns := s.Transcript()
	turns[0].Text = "mutated"

	assert.Equal(t, Greeting, s.Transcript()[0].Text)
}

func TestQuickQuestions(t *testing.T) {
	questions := QuickQuestions()
	require.Len(t, questions, 4)
	assert.Contains(t, questions, "What are my top categories?")
}
