// Package trainer drives quiz attempts over the core engine: it builds
// sessions from the vocabulary catalog, persists them between requests
// and enforces ownership.
package trainer

import (
	"time"

	"github.com/google/uuid"

	"github.com/ldelvaux/hsk-trainer/internal/quiz"
)

// Attempt is one persisted quiz session with its owner reference. A nil
// Owner marks a guest attempt; the session id is then the only
// capability needed to drive it.
type Attempt struct {
	ID        uuid.UUID     `json:"id"`
	Owner     *uuid.UUID    `json:"owner,omitempty"`
	QuizKey   string        `json:"quiz_key"`
	Seed      int64         `json:"seed"`
	State     *quiz.Session `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
}

// StartRequest configures a new attempt. Zero Count falls back to the
// owner's stored preference, then the configured default. A nil Seed
// lets the service pick one.
type StartRequest struct {
	QuizKey    string `json:"quiz_key"`
	Mode       string `json:"mode"`
	Count      int    `json:"count,omitempty"`
	Choices    int    `json:"choices,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
	MatchTones *bool  `json:"match_tones,omitempty"`
}
