// Package links associates inbound and outbound hyperlink records with
// the keyword page they support. Provider data does not reliably tie a
// link row to a keyword, so association runs a graceful-degradation
// ladder: page-token match, slug match, category fallback, and finally
// "return everything" so the UI never shows a false empty state.
package links

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/keyword-atlas/internal/resolver"
	"github.com/jonathan/keyword-atlas/internal/textnorm"
	"github.com/jonathan/keyword-atlas/internal/types"
)

// slugWordCounts are the shortened slug variants tried after the full
// phrase: first 4 words, then first 3.
var slugWordCounts = []int{4, 3}

// pageToken matches the stable per-page token the provider embeds in
// generated URLs: a trailing dash-digits pattern with an optional short
// suffix.
var pageToken = regexp.MustCompile(`-(\d+[a-z]{0,3})$`)

// Associated holds the links judged relevant to one keyword.
type Associated struct {
	RelevantIn  []types.LinkRecord `json:"relevantIn"`
	RelevantOut []types.LinkRecord `json:"relevantOut"`
}

// Associate filters the inbound and outbound link sets down to the links
// "about" the keyword. Disabled links never participate. The domain,
// when known, prioritizes which URL side of a link is inspected for slug
// matching.
func Associate(keyword types.KeywordRecord, inbound, outbound []types.LinkRecord, domain string) Associated {
	inbound = active(inbound)
	outbound = active(outbound)

	tokens := candidateTokens(keyword)
	slugs := candidateSlugs(keyword)

	// Outbound first: its matched categories seed the inbound category
	// fallback when the keyword itself carries none.
	out, outCategories := associateDirection(outbound, tokens, slugs, keyword.Categories, domain)

	inboundCategories := keyword.Categories
	if len(inboundCategories) == 0 {
		inboundCategories = outCategories
	}
	in, _ := associateDirection(inbound, tokens, slugs, inboundCategories, domain)

	return Associated{RelevantIn: in, RelevantOut: out}
}

// associateDirection runs the ladder over one direction's links. It
// returns the relevant links plus the category values that matched, for
// reuse by the other direction.
func associateDirection(links []types.LinkRecord, tokens, slugs, categories []string, domain string) ([]types.LinkRecord, []string) {
	if len(links) == 0 {
		return nil, nil
	}

	if matched := matchByToken(links, tokens); len(matched) > 0 {
		return matched, nil
	}

	if matched := matchBySlug(links, slugs, domain); len(matched) > 0 {
		return matched, nil
	}

	if matched, hit := matchByCategory(links, categories); len(matched) > 0 {
		return matched, hit
	}

	// Last resort: show everything rather than a misleading empty list.
	return links, nil
}

func active(links []types.LinkRecord) []types.LinkRecord {
	kept := make([]types.LinkRecord, 0, len(links))
	for _, l := range links {
		if l.Active() {
			kept = append(kept, l)
		}
	}
	return kept
}

// candidateTokens derives the page tokens that could identify this
// keyword's page: extracted from its linked URL when present, otherwise
// synthesized from the numeric id.
func candidateTokens(keyword types.KeywordRecord) []string {
	if keyword.LinkedURL != "" {
		segment := resolver.LastPathSegment(keyword.LinkedURL)
		if m := pageToken.FindStringSubmatch(segment); m != nil {
			return []string{"-" + m[1]}
		}
	}
	if keyword.ID > 0 {
		return []string{"-" + strconv.Itoa(keyword.ID)}
	}
	return nil
}

// candidateSlugs builds slug variants from the keyword's resolved text:
// the full phrase, then the first 4 words, then the first 3.
func candidateSlugs(keyword types.KeywordRecord) []string {
	words := textnorm.Words(resolver.DisplayText(keyword))
	if len(words) == 0 {
		return nil
	}

	var slugs []string
	seen := make(map[string]bool)

	push := func(ws []string) {
		slug := strings.Join(ws, "-")
		if slug != "" && !seen[slug] {
			seen[slug] = true
			slugs = append(slugs, slug)
		}
	}

	push(words)
	for _, n := range slugWordCounts {
		if len(words) > n {
			push(words[:n])
		}
	}
	return slugs
}

func matchByToken(links []types.LinkRecord, tokens []string) []types.LinkRecord {
	if len(tokens) == 0 {
		return nil
	}

	var matched []types.LinkRecord
	for _, link := range links {
		if urlContainsAny(link.URLs(), tokens) {
			matched = append(matched, link)
		}
	}
	return matched
}

func urlContainsAny(urls, tokens []string) bool {
	for _, u := range urls {
		for _, tok := range tokens {
			if strings.Contains(u, tok) {
				return true
			}
		}
	}
	return false
}

// matchBySlug accepts a link when a keyword slug appears inside the last
// path segment of one of its URLs, or the segment appears inside the
// slug. URLs on the keyword's own domain are checked first.
func matchBySlug(links []types.LinkRecord, slugs []string, domain string) []types.LinkRecord {
	if len(slugs) == 0 {
		return nil
	}

	var matched []types.LinkRecord
	for _, link := range links {
		if slugMatches(orderByDomain(link.URLs(), domain), slugs) {
			matched = append(matched, link)
		}
	}
	return matched
}

func slugMatches(urls, slugs []string) bool {
	for _, u := range urls {
		segment := strings.ToLower(resolver.LastPathSegment(u))
		if segment == "" {
			continue
		}
		for _, slug := range slugs {
			if strings.Contains(segment, slug) || strings.Contains(slug, segment) {
				return true
			}
		}
	}
	return false
}

// orderByDomain moves URLs hosted on the given domain to the front.
func orderByDomain(urls []string, domain string) []string {
	if domain == "" || len(urls) < 2 {
		return urls
	}

	ordered := make([]string, 0, len(urls))
	var rest []string
	for _, u := range urls {
		if strings.Contains(u, domain) {
			ordered = append(ordered, u)
		} else {
			rest = append(rest, u)
		}
	}
	return append(ordered, rest...)
}

// matchByCategory accepts links whose category or parent category is in
// the keyword's category set. Also returns which category values hit.
func matchByCategory(links []types.LinkRecord, categories []string) ([]types.LinkRecord, []string) {
	if len(categories) == 0 {
		return nil, nil
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[textnorm.Normalize(c)] = true
	}

	var matched []types.LinkRecord
	hitSet := make(map[string]bool)
	var hits []string

	for _, link := range links {
		for _, c := range []string{link.Category, link.ParentCategory} {
			if c == "" || !wanted[textnorm.Normalize(c)] {
				continue
			}
			matched = append(matched, link)
			if !hitSet[c] {
				hitSet[c] = true
				hits = append(hits, c)
			}
			break
		}
	}
	return matched, hits
}
