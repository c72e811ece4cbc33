package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoQuestionSession() *Session {
	return NewSession([]Question{
		translationQuestion("bonjour"),
		translationQuestion("merci"),
	})
}

func TestSessionFlow(t *testing.T) {
	s := twoQuestionSession()
	assert.False(t, s.Complete())

	q, ok := s.Question()
	assert.True(t, ok)
	assert.Equal(t, "bonjour", q.Translation)

	outcome, err := s.Submit("bonjour")
	assert.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, "bonjour", outcome.Expected)
	assert.Equal(t, 1, s.Score)

	assert.NoError(t, s.Advance())

	outcome, err = s.Submit("wrong")
	assert.NoError(t, err)
	assert.False(t, outcome.IsCorrect)
	assert.Equal(t, 1, s.Score)

	assert.NoError(t, s.Advance())
	assert.True(t, s.Complete())
	assert.Len(t, s.History, 2)
}

func TestSessionDoubleSubmit(t *testing.T) {
	s := twoQuestionSession()

	_, err := s.Submit("bonjour")
	assert.NoError(t, err)

	_, err = s.Submit("bonjour")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, 1, s.Score, "second submit changes nothing")
	assert.Len(t, s.History, 1)
}

func TestSessionAdvanceBeforeAnswer(t *testing.T) {
	s := twoQuestionSession()

	assert.ErrorIs(t, s.Advance(), ErrNotAnswered)
	assert.Equal(t, 0, s.Current)
}

func TestSessionCompleteGuards(t *testing.T) {
	s := NewSession([]Question{translationQuestion("oui")})

	_, err := s.Submit("oui")
	assert.NoError(t, err)
	assert.NoError(t, s.Advance())
	assert.True(t, s.Complete())

	_, err = s.Submit("oui")
	assert.ErrorIs(t, err, ErrSessionComplete)
	assert.ErrorIs(t, s.Advance(), ErrSessionComplete)

	_, ok := s.Question()
	assert.False(t, ok)
}

func TestSessionEmptyIsComplete(t *testing.T) {
	s := NewSession(nil)
	assert.True(t, s.Complete())

	_, err := s.Submit("x")
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestSessionBlankSubmission(t *testing.T) {
	s := twoQuestionSession()

	outcome, err := s.Submit("   ")
	assert.NoError(t, err, "blank grades incorrect, never errors")
	assert.False(t, outcome.IsCorrect)
	assert.Equal(t, "", outcome.Submission)
}

func TestSessionSurvivesSerialization(t *testing.T) {
	s := twoQuestionSession()
	_, err := s.Submit("bonjour")
	assert.NoError(t, err)

	data, err := json.Marshal(s)
	assert.NoError(t, err)

	var restored Session
	assert.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, s.Score, restored.Score)
	assert.Equal(t, s.Answered, restored.Answered)

	assert.NoError(t, restored.Advance())
	outcome, err := restored.Submit("merci")
	assert.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
}
