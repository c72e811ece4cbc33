package quiz

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonAlnum     = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize canonicalizes a free-text translation answer for forgiving
// comparison: lowercase, accents stripped, curly apostrophes unified,
// hyphens and every non-alphanumeric run (apostrophes included)
// collapsed to a single space, then trimmed. Idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	folded, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		folded = lowered
	}
	folded = strings.NewReplacer("’", "'", "‘", "'", "-", " ").Replace(folded)
	folded = nonAlnum.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}
