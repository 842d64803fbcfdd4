// Package resolver produces a single display string for a keyword record
// out of its many possible text fields. Resolution is deterministic and
// side-effect-free: the same record always yields the same text.
package resolver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/keyword-atlas/internal/textnorm"
	"github.com/jonathan/keyword-atlas/internal/types"
)

// maxHTMLScan caps how much of an embedded HTML snippet is scanned for a
// heading. Provider body snippets can be whole rendered pages.
const maxHTMLScan = 2000

// pageToken matches the trailing per-page token the provider appends to
// generated slugs: a dash, digits, and an optional short suffix.
var pageToken = regexp.MustCompile(`-\d+[a-z]{0,3}$`)

// fieldAccessor names one explicit text field and how to read it.
// Ordered lookup avoids dynamic property probing over heterogeneous
// payloads.
type fieldAccessor struct {
	name string
	get  func(types.KeywordRecord) string
}

// fieldPriority lists explicit title-like fields, first non-empty wins.
var fieldPriority = []fieldAccessor{
	{"keywordTitle", func(k types.KeywordRecord) string { return k.KeywordTitle }},
	{"keyword", func(k types.KeywordRecord) string { return k.Keyword }},
	{"metaTitle", func(k types.KeywordRecord) string { return k.MetaTitle }},
}

// headingSelectors are tried in order against the HTML snippet.
var headingSelectors = []string{"h1", "h2", "h3", "title"}

// DisplayText resolves the one display string for a keyword record.
// Total: falls back to "Keyword #<id>" when every source is empty.
func DisplayText(rec types.KeywordRecord) string {
	for _, field := range fieldPriority {
		if text := strings.TrimSpace(field.get(rec)); text != "" {
			return text
		}
	}

	if text := SlugText(rec.LinkedURL); text != "" {
		return text
	}

	if text := headingText(rec.PostContent); text != "" {
		return text
	}

	return fmt.Sprintf("Keyword #%d", rec.ID)
}

// SlugText reconstructs display text from the last path segment of a
// page URL: the trailing page token is stripped, hyphens and underscores
// become spaces, and each word is title-cased. Returns "" when the URL
// has no usable segment.
func SlugText(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	segment := lastSegment(urlPath(rawURL))
	if segment == "" {
		return ""
	}

	segment = pageToken.ReplaceAllString(segment, "")
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return ""
	}

	return textnorm.TitleCase(segment)
}

// LastPathSegment exposes the final path segment of a URL, used by the
// link associator for slug comparisons.
func LastPathSegment(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	return lastSegment(urlPath(rawURL))
}

// urlPath extracts the path portion of a URL. An absolute URL with an
// empty path has no usable segment; the host never counts as one.
func urlPath(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil && (parsed.Scheme != "" || parsed.Host != "") {
		return parsed.Path
	}
	return rawURL
}

func lastSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// headingText extracts the first heading-like element from an HTML
// snippet, trying h1, then h2/h3, then <title>.
func headingText(htmlSnippet string) string {
	if strings.TrimSpace(htmlSnippet) == "" {
		return ""
	}

	snippet := textnorm.DecodeEntities(htmlSnippet)
	if len(snippet) > maxHTMLScan {
		snippet = snippet[:maxHTMLScan]
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return ""
	}

	for _, selector := range headingSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}

	return ""
}
