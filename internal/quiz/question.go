package quiz

import (
	"strings"

	"github.com/ldelvaux/hsk-trainer/internal/pinyin"
)

// Question is one prepared quiz item. All comparison data is
// precomputed at build time so grading a submission is a pure lookup;
// the struct serializes cleanly for session snapshots.
type Question struct {
	Hanzi       string `json:"hanzi"`
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
	Mode        Mode   `json:"mode"`

	// Accepted holds the raw translation plus synonyms for feedback
	// display; AcceptedNorm holds their canonical comparison forms.
	Accepted     []string `json:"accepted,omitempty"`
	AcceptedNorm []string `json:"accepted_norm,omitempty"`

	// PinyinKey is the canonical transcription for pinyin questions.
	// MatchTones selects the tone-sensitive comparison.
	PinyinKey  []pinyin.Syllable `json:"pinyin_key,omitempty"`
	MatchTones bool              `json:"match_tones,omitempty"`

	// Choices and Correct are set for the multiple-choice modes.
	// Correct must never reach a client before the question is answered.
	Choices []string `json:"choices,omitempty"`
	Correct string   `json:"correct,omitempty"`
}

// Prompt returns the text shown to the learner for this question.
func (q Question) Prompt() string {
	if q.Mode == ModeHanziChoice {
		return q.Translation
	}
	return q.Hanzi
}

// Grade evaluates a raw submission under the question's mode. Blank
// submissions are incorrect, never an error.
func (q Question) Grade(submission string) bool {
	switch q.Mode {
	case ModeTranslationInput:
		norm := Normalize(submission)
		if norm == "" {
			return false
		}
		for _, accepted := range q.AcceptedNorm {
			if norm == accepted {
				return true
			}
		}
		return false
	case ModePinyinInput:
		key := pinyin.Parse(submission)
		if len(key) == 0 {
			return false
		}
		if q.MatchTones {
			return pinyin.Equal(key, q.PinyinKey)
		}
		return pinyin.EqualBases(key, q.PinyinKey)
	case ModeHanziChoice, ModeTranslationChoice:
		return strings.TrimSpace(submission) != "" && submission == q.Correct
	default:
		return false
	}
}
