package quiz

import (
	"errors"
	"strings"
)

var (
	// ErrSessionComplete rejects submissions once every question is done.
	ErrSessionComplete = errors.New("session complete")
	// ErrAlreadyAnswered guards against double submission; the prior
	// outcome is never overwritten.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrNotAnswered rejects advancing past an unanswered question.
	ErrNotAnswered = errors.New("current question not answered")
)

// Outcome is one append-only history record.
type Outcome struct {
	Hanzi      string `json:"hanzi"`
	Pinyin     string `json:"pinyin"`
	Mode       Mode   `json:"mode"`
	Submission string `json:"submission"`
	Expected   string `json:"expected"`
	IsCorrect  bool   `json:"is_correct"`
}

// Session is one learner's pass through a fixed question list. It is a
// plain serializable value owned by exactly one caller; there are two
// states, in progress and complete, and the cursor only moves forward.
type Session struct {
	Questions []Question `json:"questions"`
	Current   int        `json:"current"`
	Score     int        `json:"score"`
	Answered  bool       `json:"answered"`
	History   []Outcome  `json:"history"`
}

// NewSession wraps a built question list. An empty list is a valid,
// immediately complete session.
func NewSession(questions []Question) *Session {
	return &Session{Questions: questions}
}

// Complete reports whether every question has been answered and
// advanced past.
func (s *Session) Complete() bool {
	return s.Current >= len(s.Questions)
}

// Question returns the current question, or false when complete.
func (s *Session) Question() (Question, bool) {
	if s.Complete() {
		return Question{}, false
	}
	return s.Questions[s.Current], true
}

// Submit grades a raw submission against the current question, records
// the outcome and bumps the score on success. A second submit without
// an intervening Advance fails with ErrAlreadyAnswered and changes
// nothing. Blank submissions grade incorrect rather than erroring.
func (s *Session) Submit(raw string) (Outcome, error) {
	question, ok := s.Question()
	if !ok {
		return Outcome{}, ErrSessionComplete
	}
	if s.Answered {
		return Outcome{}, ErrAlreadyAnswered
	}

	outcome := Outcome{
		Hanzi:      question.Hanzi,
		Pinyin:     question.Pinyin,
		Mode:       question.Mode,
		Submission: strings.TrimSpace(raw),
		Expected:   question.expected(),
		IsCorrect:  question.Grade(raw),
	}

	s.Answered = true
	if outcome.IsCorrect {
		s.Score++
	}
	s.History = append(s.History, outcome)
	return outcome, nil
}

// Advance moves to the next question once the current one is answered.
// Reaching the end completes the session; only a fresh build leaves
// that state.
func (s *Session) Advance() error {
	if s.Complete() {
		return ErrSessionComplete
	}
	if !s.Answered {
		return ErrNotAnswered
	}
	s.Current++
	s.Answered = false
	return nil
}

// expected is the display form of the right answer for history records.
func (q Question) expected() string {
	switch q.Mode {
	case ModePinyinInput:
		return q.Pinyin
	case ModeHanziChoice:
		return q.Hanzi
	default:
		return q.Translation
	}
}
