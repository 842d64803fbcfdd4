// Package serpmatch reconciles keyword display text with ranking report
// rows. Matching is a three-tier fallback ladder: exact, substring, then
// word-overlap. Each tier is a standalone strategy so the ladder stays
// independently testable.
package serpmatch

import (
	"strings"

	"github.com/jonathan/keyword-atlas/internal/textnorm"
	"github.com/jonathan/keyword-atlas/internal/types"
)

const (
	// minOverlapWords is how many shared significant words the overlap
	// tier requires before accepting a row.
	minOverlapWords = 2

	// minWordLength filters connective words out of overlap counting.
	minWordLength = 2
)

// matchTier is one strategy in the fallback ladder. It returns the index
// of the accepted row, or -1.
type matchTier func(keyword string, rows []string) int

var tiers = []matchTier{matchExact, matchSubstring, matchOverlap}

// FindSnapshotRow maps keyword display text to a ranking report row.
// Returns nil when no tier matches. For repeated matching against many
// snapshots (trend charts), use a Matcher instead.
func FindSnapshotRow(keywordText string, rows []types.SerpSnapshotRow) *types.SerpSnapshotRow {
	if idx := findIndex(textnorm.Normalize(keywordText), normalizeRows(rows)); idx >= 0 {
		return &rows[idx]
	}
	return nil
}

// Matcher matches many keywords against one snapshot's rows, memoizing
// per normalized keyword text. Matching is O(N·M) per snapshot; the memo
// keeps historical trend computation from repeating work for the same
// keyword.
type Matcher struct {
	rows       []types.SerpSnapshotRow
	normalized []string
	memo       map[string]int
}

// NewMatcher prepares a matcher over one snapshot's rows.
func NewMatcher(rows []types.SerpSnapshotRow) *Matcher {
	return &Matcher{
		rows:       rows,
		normalized: normalizeRows(rows),
		memo:       make(map[string]int),
	}
}

// Find returns the matched row for keywordText, or nil.
func (m *Matcher) Find(keywordText string) *types.SerpSnapshotRow {
	if idx := m.FindIndex(keywordText); idx >= 0 {
		return &m.rows[idx]
	}
	return nil
}

// FindIndex returns the matched row index for keywordText, or -1.
func (m *Matcher) FindIndex(keywordText string) int {
	keyword := textnorm.Normalize(keywordText)
	if idx, ok := m.memo[keyword]; ok {
		return idx
	}
	idx := findIndex(keyword, m.normalized)
	m.memo[keyword] = idx
	return idx
}

func findIndex(keyword string, rows []string) int {
	if keyword == "" {
		return -1
	}
	for _, tier := range tiers {
		if idx := tier(keyword, rows); idx >= 0 {
			return idx
		}
	}
	return -1
}

func normalizeRows(rows []types.SerpSnapshotRow) []string {
	normalized := make([]string, len(rows))
	for i, row := range rows {
		normalized[i] = textnorm.Normalize(row.KeywordText)
	}
	return normalized
}

func matchExact(keyword string, rows []string) int {
	for i, row := range rows {
		if row == keyword {
			return i
		}
	}
	return -1
}

// matchSubstring accepts containment in either direction: the report row
// may carry a longer phrase than the keyword, or vice versa.
func matchSubstring(keyword string, rows []string) int {
	for i, row := range rows {
		if row == "" {
			continue
		}
		if strings.Contains(row, keyword) || strings.Contains(keyword, row) {
			return i
		}
	}
	return -1
}

// matchOverlap accepts the first row sharing at least minOverlapWords
// significant words with the keyword.
func matchOverlap(keyword string, rows []string) int {
	keywordWords := wordSet(keyword)
	if len(keywordWords) == 0 {
		return -1
	}

	for i, row := range rows {
		shared := 0
		for w := range wordSet(row) {
			if keywordWords[w] {
				shared++
			}
		}
		if shared >= minOverlapWords {
			return i
		}
	}
	return -1
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range textnorm.SignificantWords(s, minWordLength) {
		set[w] = true
	}
	return set
}
