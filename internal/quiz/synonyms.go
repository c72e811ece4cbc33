package quiz

import (
	"strings"
	"unicode"
)

// classifierPrefix flags CEDICT-style measure-word annotations
// ("CL:個|个") which are hints, not translations.
const classifierPrefix = "cl:"

// Synonyms splits a raw alt-translation field into the list of accepted
// alternates, in source order and with duplicates kept. Fields are
// semicolon- or newline-delimited; commas act as delimiters only when
// the field carries no semicolon at all, so a phrase like "well, then"
// survives inside a semicolon-delimited list. Classifier annotations
// are dropped whole.
func Synonyms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	segments := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n'
	})

	splitCommas := !strings.Contains(raw, ";")

	var out []string
	for _, segment := range segments {
		candidates := []string{segment}
		if splitCommas && strings.Contains(segment, ",") {
			candidates = strings.Split(segment, ",")
		}
		for _, candidate := range candidates {
			cleaned := strings.TrimFunc(candidate, func(r rune) bool {
				return unicode.IsSpace(r) || r == '/'
			})
			if cleaned == "" {
				continue
			}
			if strings.HasPrefix(strings.ToLower(cleaned), classifierPrefix) {
				continue
			}
			out = append(out, cleaned)
		}
	}
	return out
}
