package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/keyword-atlas/internal/types"
)

func TestAssociate_TokenMatch(t *testing.T) {
	keyword := types.KeywordRecord{
		ID:        12,
		Keyword:   "Best Dentist Vancouver",
		LinkedURL: "https://example.com/best-dentist-vancouver-4821x",
	}
	inbound := []types.LinkRecord{
		{Direction: types.LinkInbound, SourceURL: "https://blog.example.org/post", TargetURL: "https://example.com/best-dentist-vancouver-4821x"},
		{Direction: types.LinkInbound, SourceURL: "https://other.org", TargetURL: "https://example.com/totally-unrelated-99"},
	}

	result := Associate(keyword, inbound, nil, "example.com")

	require.Len(t, result.RelevantIn, 1)
	assert.Equal(t, "https://blog.example.org/post", result.RelevantIn[0].SourceURL)
}

func TestAssociate_TokenSynthesizedFromID(t *testing.T) {
	keyword := types.KeywordRecord{ID: 77, Keyword: "Gutter Cleaning"}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/gutters-77", TargetURL: "https://partner.com"},
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/siding-12", TargetURL: "https://partner.com"},
	}

	result := Associate(keyword, nil, outbound, "")

	require.Len(t, result.RelevantOut, 1)
	assert.Contains(t, result.RelevantOut[0].SourceURL, "-77")
}

func TestAssociate_SlugMatch(t *testing.T) {
	keyword := types.KeywordRecord{ID: 5, Keyword: "Water Heater Installation"}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/services/water-heater-installation", TargetURL: "https://supplier.com"},
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/contact", TargetURL: "https://supplier.com"},
	}

	result := Associate(keyword, nil, outbound, "example.com")

	require.Len(t, result.RelevantOut, 1)
	assert.Contains(t, result.RelevantOut[0].SourceURL, "water-heater-installation")
}

func TestAssociate_SlugShortenedVariant(t *testing.T) {
	// Full phrase has 5 words; the first-3-words slug matches the page.
	keyword := types.KeywordRecord{ID: 5, Keyword: "Emergency Water Heater Repair Service"}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/emergency-water-heater", TargetURL: "https://supplier.com"},
	}

	result := Associate(keyword, nil, outbound, "example.com")

	require.Len(t, result.RelevantOut, 1)
}

func TestAssociate_CategoryFallback(t *testing.T) {
	keyword := types.KeywordRecord{
		ID:         9,
		Keyword:    "Koi Pond Design",
		Categories: []string{"Landscaping"},
	}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/about", TargetURL: "https://partner.com/water-features", Category: "Landscaping"},
		{Direction: types.LinkOutbound, SourceURL: "https://example.com/about", TargetURL: "https://partner.com/plumbing", Category: "Plumbing"},
	}

	result := Associate(keyword, nil, outbound, "example.com")

	require.Len(t, result.RelevantOut, 1)
	assert.Equal(t, "Landscaping", result.RelevantOut[0].Category)
}

func TestAssociate_ParentCategoryCounts(t *testing.T) {
	keyword := types.KeywordRecord{ID: 9, Keyword: "Koi Pond Design", Categories: []string{"Outdoor"}}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, TargetURL: "https://partner.com/x", Category: "Ponds", ParentCategory: "Outdoor"},
	}

	result := Associate(keyword, nil, outbound, "")

	require.Len(t, result.RelevantOut, 1)
}

func TestAssociate_InboundReusesOutboundCategories(t *testing.T) {
	// Keyword carries no categories; outbound matches via "Landscaping",
	// and inbound reuses that category set.
	keyword := types.KeywordRecord{ID: 9, Keyword: "Koi Pond Design"}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, TargetURL: "https://partner.com/koi-pond-design", Category: "Landscaping"},
	}
	inbound := []types.LinkRecord{
		{Direction: types.LinkInbound, SourceURL: "https://directory.com/listing-1", Category: "Landscaping"},
		{Direction: types.LinkInbound, SourceURL: "https://directory.com/listing-2", Category: "Automotive"},
	}

	result := Associate(keyword, inbound, outbound, "")

	// Outbound matched by slug, not category, so no categories flow to
	// inbound and the inbound ladder falls through to return-all.
	require.Len(t, result.RelevantOut, 1)
	assert.Len(t, result.RelevantIn, 2)
}

func TestAssociate_InboundReusesOutboundCategoryHits(t *testing.T) {
	keyword := types.KeywordRecord{ID: 9, Keyword: "Koi Pond Design", Categories: nil}
	outbound := []types.LinkRecord{
		{Direction: types.LinkOutbound, TargetURL: "https://partner.com/water-gardens", Category: "Landscaping"},
	}
	inbound := []types.LinkRecord{
		{Direction: types.LinkInbound, SourceURL: "https://directory.com/listing-1", Category: "Landscaping"},
		{Direction: types.LinkInbound, SourceURL: "https://directory.com/listing-2", Category: "Automotive"},
	}

	// Outbound has no token/slug match, so it falls through... but the
	// keyword has no categories either, so outbound returns everything
	// and reports no category hits; inbound then returns everything too.
	result := Associate(keyword, inbound, outbound, "")

	assert.Len(t, result.RelevantOut, 1)
	assert.Len(t, result.RelevantIn, 2)
}

func TestAssociate_LastResortReturnsEverything(t *testing.T) {
	keyword := types.KeywordRecord{ID: 3, Keyword: "Snow Removal"}
	inbound := []types.LinkRecord{
		{Direction: types.LinkInbound, SourceURL: "https://a.com/page-one"},
		{Direction: types.LinkInbound, SourceURL: "https://b.com/page-two"},
	}

	result := Associate(keyword, inbound, nil, "")

	assert.Len(t, result.RelevantIn, 2)
	assert.Empty(t, result.RelevantOut)
}

func TestAssociate_DisabledLinksExcluded(t *testing.T) {
	keyword := types.KeywordRecord{ID: 3, Keyword: "Snow Removal"}
	inbound := []types.LinkRecord{
		{Direction: types.LinkInbound, SourceURL: "https://a.com/snow-removal"},
		{Direction: types.LinkInbound, SourceURL: "https://b.com/snow-removal", Disabled: true},
	}

	result := Associate(keyword, inbound, nil, "")

	require.Len(t, result.RelevantIn, 1)
	assert.Equal(t, "https://a.com/snow-removal", result.RelevantIn[0].SourceURL)
}

func TestCandidateSlugs_Variants(t *testing.T) {
	keyword := types.KeywordRecord{ID: 1, Keyword: "Emergency Water Heater Repair Service"}

	slugs := candidateSlugs(keyword)

	assert.Equal(t, []string{
		"emergency-water-heater-repair-service",
		"emergency-water-heater-repair",
		"emergency-water-heater",
	}, slugs)
}

func TestCandidateTokens_FromLinkedURL(t *testing.T) {
	keyword := types.KeywordRecord{ID: 8, LinkedURL: "https://example.com/koi-ponds-311ab"}

	assert.Equal(t, []string{"-311ab"}, candidateTokens(keyword))
}

func TestCandidateTokens_SyntheticID(t *testing.T) {
	assert.Equal(t, []string{"-42"}, candidateTokens(types.KeywordRecord{ID: 42}))
}

func TestCandidateTokens_NegativeSyntheticKeyword(t *testing.T) {
	assert.Nil(t, candidateTokens(types.KeywordRecord{ID: -3}))
}
