// Package pinyin canonicalizes romanized Mandarin transcriptions into
// comparable (base syllable, tone) sequences. Both diacritic marking
// (nǐ hǎo) and trailing tone digits (ni3 hao3) are understood; the
// ü vowel and its ASCII spelling "u:" both map to the base letter v.
package pinyin

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Syllable is one canonical pinyin unit. Tone 0 means unmarked/neutral.
type Syllable struct {
	Base string `json:"base"`
	Tone int    `json:"tone"`
}

// tonedVowels maps every diacritic-marked pinyin vowel to its base
// letter and tone number. ü variants resolve to the placeholder v.
var tonedVowels = map[rune]Syllable{
	'ā': {"a", 1}, 'á': {"a", 2}, 'ǎ': {"a", 3}, 'à': {"a", 4},
	'ē': {"e", 1}, 'é': {"e", 2}, 'ě': {"e", 3}, 'è': {"e", 4},
	'ī': {"i", 1}, 'í': {"i", 2}, 'ǐ': {"i", 3}, 'ì': {"i", 4},
	'ō': {"o", 1}, 'ó': {"o", 2}, 'ǒ': {"o", 3}, 'ò': {"o", 4},
	'ū': {"u", 1}, 'ú': {"u", 2}, 'ǔ': {"u", 3}, 'ù': {"u", 4},
	'ǖ': {"v", 1}, 'ǘ': {"v", 2}, 'ǚ': {"v", 3}, 'ǜ': {"v", 4},
}

// tokenPattern matches one syllable candidate: a run of Latin letters
// (diacritics included), colons for the u: digraph and apostrophes,
// optionally closed by a single tone digit.
var tokenPattern = regexp.MustCompile(`[\p{Latin}:'’ʼ]+[0-9]?`)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Parse splits text into canonical syllables. Unparseable or empty
// input yields an empty (nil) slice, never an error. Input is composed
// to NFC first so decomposed diacritics keep their tone instead of
// falling outside the token pattern.
func Parse(text string) []Syllable {
	text = norm.NFC.String(text)

	var out []Syllable
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if syl, ok := parseToken(token); ok {
			out = append(out, syl)
		}
	}
	return out
}

func parseToken(token string) (Syllable, bool) {
	token = strings.Map(func(r rune) rune {
		switch r {
		case '\'', '’', 'ʼ':
			return -1
		}
		return r
	}, token)

	tone := 0
	toneFixed := false
	if n := len(token); n > 0 && token[n-1] >= '0' && token[n-1] <= '9' {
		// An explicit digit always wins over diacritics; digits outside
		// 1-4 (neutral-tone 5, stray 0) are consumed without marking.
		if d := int(token[n-1] - '0'); d >= 1 && d <= 4 {
			tone = d
		}
		toneFixed = true
		token = token[:n-1]
	}

	var base strings.Builder
	runeSeq := []rune(token)
	for i := 0; i < len(runeSeq); i++ {
		r := unicode.ToLower(runeSeq[i])
		switch {
		case r == 'u' && i+1 < len(runeSeq) && runeSeq[i+1] == ':':
			base.WriteByte('v')
			i++
		case r == ':':
			// stray colon, not part of a u: digraph
		case r == 'ü':
			base.WriteByte('v')
		default:
			if syl, ok := tonedVowels[r]; ok {
				base.WriteString(syl.Base)
				if !toneFixed {
					tone = syl.Tone
				}
				continue
			}
			plain, _, err := transform.String(stripMarks, string(r))
			if err != nil {
				continue
			}
			base.WriteString(strings.ToLower(plain))
		}
	}

	if base.Len() == 0 {
		return Syllable{}, false
	}
	return Syllable{Base: base.String(), Tone: tone}, true
}

// Equal reports whether two syllable sequences match exactly,
// tones included.
func Equal(a, b []Syllable) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualBases compares only the base syllables, ignoring tones. Used for
// the tone-insensitive answer variant.
func EqualBases(a, b []Syllable) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Base != b[i].Base {
			return false
		}
	}
	return true
}

// Bases returns the tone-stripped view of a sequence.
func Bases(s []Syllable) []string {
	out := make([]string, len(s))
	for i, syl := range s {
		out[i] = syl.Base
	}
	return out
}
