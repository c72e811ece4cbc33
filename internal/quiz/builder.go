package quiz

import (
	"fmt"
	"math/rand"

	"github.com/ldelvaux/hsk-trainer/internal/pinyin"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
)

// DefaultChoiceCount is the standard multiple-choice width.
const DefaultChoiceCount = 4

// BuildOptions tune question construction.
type BuildOptions struct {
	// NumChoices is the total choice count for MCQ modes, correct
	// answer included. Defaults to DefaultChoiceCount.
	NumChoices int
	// MatchTones makes pinyin grading compare tones, not just bases.
	MatchTones bool
}

// Build samples count distinct entries from pool and prepares one
// question per entry for the given mode. The same (pool, count, mode,
// seed, opts) always produces the same questions, distractors and
// shuffles: a single seeded generator drives the whole build. count is
// clamped to the pool size; an empty pool yields no questions. The only
// error is an unknown mode.
func Build(pool []vocab.Entry, count int, mode Mode, seed int64, opts BuildOptions) ([]Question, error) {
	if mode < ModeTranslationInput || mode > ModeTranslationChoice {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(mode))
	}
	if opts.NumChoices <= 0 {
		opts.NumChoices = DefaultChoiceCount
	}

	total := count
	if total > len(pool) {
		total = len(pool)
	}
	if total <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(seed))
	selected := sample(rng, len(pool), total)

	questions := make([]Question, 0, total)
	for _, idx := range selected {
		entry := pool[idx]
		q := Question{
			Hanzi:       entry.Hanzi,
			Pinyin:      entry.Pinyin,
			Translation: entry.Translation,
			Mode:        mode,
		}

		switch mode {
		case ModeTranslationInput:
			q.Accepted = append([]string{entry.Translation}, Synonyms(entry.AltTranslations)...)
			q.AcceptedNorm = make([]string, 0, len(q.Accepted))
			for _, accepted := range q.Accepted {
				q.AcceptedNorm = append(q.AcceptedNorm, Normalize(accepted))
			}
		case ModePinyinInput:
			q.PinyinKey = pinyin.Parse(entry.Pinyin)
			q.MatchTones = opts.MatchTones
		case ModeHanziChoice:
			q.Correct = entry.Hanzi
			q.Choices = buildChoices(rng, pool, idx, opts.NumChoices, func(e vocab.Entry) string { return e.Hanzi })
		case ModeTranslationChoice:
			q.Correct = entry.Translation
			q.Choices = buildChoices(rng, pool, idx, opts.NumChoices, func(e vocab.Entry) string { return e.Translation })
		}

		questions = append(questions, q)
	}
	return questions, nil
}

// buildChoices draws distractors without replacement from the target
// field of every entry whose value differs from the correct one, then
// shuffles distractors plus correct answer on the shared stream.
// Distractors are not deduplicated against each other: two entries
// sharing a translation can both be drawn.
func buildChoices(rng *rand.Rand, pool []vocab.Entry, correctIdx, numChoices int, field func(vocab.Entry) string) []string {
	correct := field(pool[correctIdx])

	var candidates []string
	for _, entry := range pool {
		if v := field(entry); v != correct {
			candidates = append(candidates, v)
		}
	}

	want := numChoices - 1
	if want > len(candidates) {
		want = len(candidates)
	}

	choices := make([]string, 0, want+1)
	for _, idx := range sample(rng, len(candidates), want) {
		choices = append(choices, candidates[idx])
	}
	choices = append(choices, correct)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// sample returns k distinct indices from [0, n) via a partial
// Fisher-Yates pass, preserving the generator's stream position.
func sample(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:k]
}
