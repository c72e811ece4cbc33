// Package vocab serves the vocabulary catalog: quiz datasets and their
// entries, backed by Postgres with a Redis pool cache in front.
package vocab

// Quiz describes one vocabulary dataset (e.g. HSK1).
type Quiz struct {
	ID          int32  `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Level       int32  `json:"level,omitempty"`
}

// Entry is one vocabulary item. Hanzi, Pinyin and Translation are
// always non-empty for entries served to the trainer; the seeder
// excludes incomplete rows.
type Entry struct {
	Hanzi           string `json:"hanzi"`
	Pinyin          string `json:"pinyin"`
	Translation     string `json:"translation"`
	AltTranslations string `json:"alt_translations,omitempty"`
	Tags            string `json:"tags,omitempty"`
}
