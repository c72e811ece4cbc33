package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldelvaux/hsk-trainer/internal/pinyin"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
)

func testPool(n int) []vocab.Entry {
	pool := make([]vocab.Entry, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, vocab.Entry{
			Hanzi:       fmt.Sprintf("字%d", i),
			Pinyin:      fmt.Sprintf("zi%d", i%4+1),
			Translation: fmt.Sprintf("mot %d", i),
		})
	}
	return pool
}

func TestBuildDeterministic(t *testing.T) {
	pool := testPool(20)

	a, err := Build(pool, 5, ModeTranslationChoice, 42, BuildOptions{})
	assert.NoError(t, err)
	b, err := Build(pool, 5, ModeTranslationChoice, 42, BuildOptions{})
	assert.NoError(t, err)

	assert.Equal(t, a, b, "same seed must reproduce questions, distractors and order")
}

func TestBuildSamplesDistinctEntries(t *testing.T) {
	pool := testPool(20)

	questions, err := Build(pool, 10, ModeTranslationInput, 7, BuildOptions{})
	assert.NoError(t, err)
	assert.Len(t, questions, 10)

	seen := map[string]bool{}
	for _, q := range questions {
		assert.False(t, seen[q.Hanzi], "entry %s drawn twice", q.Hanzi)
		seen[q.Hanzi] = true
	}
}

func TestBuildClampsCount(t *testing.T) {
	pool := testPool(3)

	questions, err := Build(pool, 10, ModeTranslationInput, 1, BuildOptions{})
	assert.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestBuildEmptyPool(t *testing.T) {
	questions, err := Build(nil, 5, ModeTranslationInput, 1, BuildOptions{})
	assert.NoError(t, err)
	assert.Empty(t, questions)
}

func TestBuildUnknownMode(t *testing.T) {
	_, err := Build(testPool(5), 3, Mode(0), 1, BuildOptions{})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = Build(testPool(5), 3, Mode(99), 1, BuildOptions{})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestBuildTranslationAcceptsSynonyms(t *testing.T) {
	pool := []vocab.Entry{
		{Hanzi: "书", Pinyin: "shū", Translation: "livre", AltTranslations: "bouquin; CL:本"},
	}

	questions, err := Build(pool, 1, ModeTranslationInput, 1, BuildOptions{})
	assert.NoError(t, err)
	assert.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, []string{"livre", "bouquin"}, q.Accepted)
	assert.Equal(t, []string{"livre", "bouquin"}, q.AcceptedNorm)
	assert.True(t, q.Grade("Bouquin"))
}

func TestBuildPinyinKey(t *testing.T) {
	pool := []vocab.Entry{
		{Hanzi: "你好", Pinyin: "nǐ hǎo", Translation: "bonjour"},
	}

	questions, err := Build(pool, 1, ModePinyinInput, 1, BuildOptions{MatchTones: true})
	assert.NoError(t, err)
	assert.Len(t, questions, 1)

	q := questions[0]
	assert.True(t, q.MatchTones)
	assert.True(t, pinyin.Equal(q.PinyinKey, pinyin.Parse("ni3 hao3")))
}

func TestBuildChoices(t *testing.T) {
	pool := testPool(20)

	questions, err := Build(pool, 5, ModeTranslationChoice, 9, BuildOptions{})
	assert.NoError(t, err)

	for _, q := range questions {
		assert.Len(t, q.Choices, DefaultChoiceCount)
		assert.Contains(t, q.Choices, q.Correct)
		assert.Equal(t, q.Translation, q.Correct)

		distractors := 0
		for _, c := range q.Choices {
			if c != q.Correct {
				distractors++
			}
		}
		assert.Equal(t, DefaultChoiceCount-1, distractors)
	}
}

func TestBuildChoicesSmallPool(t *testing.T) {
	pool := testPool(2)

	questions, err := Build(pool, 2, ModeHanziChoice, 3, BuildOptions{})
	assert.NoError(t, err)

	for _, q := range questions {
		assert.Len(t, q.Choices, 2, "one distractor available")
		assert.Contains(t, q.Choices, q.Correct)
		assert.Equal(t, q.Hanzi, q.Correct)
	}
}

func TestBuildChoicesDuplicateTranslations(t *testing.T) {
	// Two entries share a translation: both can be drawn as
	// distractors, while entries sharing the correct value never can.
	pool := []vocab.Entry{
		{Hanzi: "你好", Pinyin: "nǐ hǎo", Translation: "bonjour"},
		{Hanzi: "谢谢", Pinyin: "xiè xie", Translation: "merci"},
		{Hanzi: "多谢", Pinyin: "duō xiè", Translation: "merci"},
		{Hanzi: "再见", Pinyin: "zài jiàn", Translation: "au revoir"},
	}

	questions, err := Build(pool, len(pool), ModeTranslationChoice, 11, BuildOptions{})
	assert.NoError(t, err)
	assert.Len(t, questions, 4)

	count := func(choices []string, value string) int {
		n := 0
		for _, c := range choices {
			if c == value {
				n++
			}
		}
		return n
	}

	for _, q := range questions {
		switch q.Correct {
		case "bonjour":
			// All three candidates fit, so the shared value shows twice.
			assert.Len(t, q.Choices, 4)
			assert.Equal(t, 2, count(q.Choices, "merci"))
			assert.Equal(t, 1, count(q.Choices, "bonjour"))
		case "merci":
			// Both merci entries are excluded as distractors.
			assert.Len(t, q.Choices, 3)
			assert.Equal(t, 1, count(q.Choices, "merci"))
		}
	}
}

func TestBuildChoiceWidthOption(t *testing.T) {
	pool := testPool(20)

	questions, err := Build(pool, 3, ModeTranslationChoice, 4, BuildOptions{NumChoices: 6})
	assert.NoError(t, err)

	for _, q := range questions {
		assert.Len(t, q.Choices, 6)
	}
}
