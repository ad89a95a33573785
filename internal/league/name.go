package league

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trailing grade/classroom tokens like "8A", "11th" or "9B" that show
// up in imported roster sheets.
var gradeSuffix = regexp.MustCompile(`(?i)\s+\d{1,2}(?:st|nd|rd|th)?[A-Za-z]?$`)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeName strips a trailing grade token and collapses runs of
// whitespace. Normalizing an already-normalized name is a no-op.
func NormalizeName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = gradeSuffix.ReplaceAllString(cleaned, "")
	cleaned = whitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// NameKey is the identity key used to match players across imports:
// normalized, diacritics stripped, lower-cased.
func NameKey(name string) string {
	return strings.ToLower(stripDiacritics(NormalizeName(name)))
}

func stripDiacritics(value string) string {
	decomposed := norm.NFD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DetectPlayerType guesses student vs teacher from an honorific prefix.
func DetectPlayerType(name string) PlayerType {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range []string{"mr.", "mrs.", "ms."} {
		if strings.HasPrefix(lower, prefix) {
			return PlayerTeacher
		}
	}
	return PlayerStudent
}
