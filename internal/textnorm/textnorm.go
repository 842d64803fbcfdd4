// Package textnorm provides the text normalization primitives shared by
// the resolver, matcher, cluster builder and link associator.
package textnorm

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so accented characters compare
// equal to their ASCII equivalents.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold removes diacritic marks from s. On transform failure the input is
// returned unchanged; normalization must never fail a caller.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// DecodeEntities resolves HTML entities (&amp;, &#8211;, ...) in s.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// Normalize produces the canonical comparison form of s: entities
// decoded, diacritics folded, lowercased, punctuation replaced by
// spaces, whitespace collapsed and trimmed. Every matching tier in the
// system compares normalized text only.
func Normalize(s string) string {
	s = DecodeEntities(s)
	s = Fold(s)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Words splits s into normalized words.
func Words(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// SignificantWords returns the normalized words of s longer than min
// characters. Short connective words carry no matching signal.
func SignificantWords(s string, min int) []string {
	words := Words(s)
	kept := words[:0]
	for _, w := range words {
		if len(w) > min {
			kept = append(kept, w)
		}
	}
	return kept
}

// Slugify converts s into a hyphenated URL slug.
func Slugify(s string) string {
	return strings.Join(Words(s), "-")
}

// TitleCase capitalizes the first letter of each word in s. Used when
// reconstructing display text from a URL slug.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
