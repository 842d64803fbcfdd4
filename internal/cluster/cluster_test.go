package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/keyword-atlas/internal/types"
)

func TestBuild_EmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]types.KeywordRecord{}))
}

func TestBuild_NestedSupportingKeywords(t *testing.T) {
	keywords := []types.KeywordRecord{
		{
			ID:      1,
			Keyword: "SEO Services",
			SupportingKeywords: []types.KeywordRecord{
				{ID: 2, Keyword: "Local SEO"},
			},
		},
	}

	clusters := Build(keywords)

	require.Len(t, clusters, 1)
	assert.Equal(t, 1, clusters[0].Parent.ID)
	require.Len(t, clusters[0].Children, 1)
	assert.Equal(t, 2, clusters[0].Children[0].ID)
}

func TestBuild_ParentIDRelationship(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: 1, Keyword: "Dental Implants"},
		{ID: 2, Keyword: "Implant Aftercare", ParentID: 1},
	}

	clusters := Build(keywords)

	require.Len(t, clusters, 1)
	assert.Equal(t, 1, clusters[0].Parent.ID)
	require.Len(t, clusters[0].Children, 1)
	assert.Equal(t, 2, clusters[0].Children[0].ID)
}

func TestBuild_NestedEncodingWinsConflict(t *testing.T) {
	// Keyword 3 is nested under 1 but also declares ParentID 2. The
	// nested encoding is scanned first and wins.
	keywords := []types.KeywordRecord{
		{
			ID:      1,
			Keyword: "Roofing",
			SupportingKeywords: []types.KeywordRecord{
				{ID: 3, Keyword: "Roof Repair", ParentID: 2},
			},
		},
		{ID: 2, Keyword: "Siding"},
		{ID: 3, Keyword: "Roof Repair", ParentID: 2},
	}

	clusters := Build(keywords)

	byParent := make(map[int]types.KeywordCluster)
	for _, c := range clusters {
		byParent[c.Parent.ID] = c
	}

	require.Len(t, byParent[1].Children, 1)
	assert.Equal(t, 3, byParent[1].Children[0].ID)
	assert.Empty(t, byParent[2].Children)
}

func TestBuild_ChildrenTruncatedToTwo(t *testing.T) {
	keywords := []types.KeywordRecord{
		{
			ID:      1,
			Keyword: "Plumbing",
			SupportingKeywords: []types.KeywordRecord{
				{ID: 2, Keyword: "Drain Cleaning"},
				{ID: 3, Keyword: "Pipe Repair"},
				{ID: 4, Keyword: "Water Heaters"},
			},
		},
	}

	clusters := Build(keywords)

	for _, c := range clusters {
		assert.LessOrEqual(t, len(c.Children), 2)
	}
	// The overflow child stays visible as its own cluster.
	assertCoversExactly(t, clusters, []int{1, 2, 3, 4})
}

func TestBuild_ParentChainFlattened(t *testing.T) {
	// 1 -> 2 -> 3: the middle record stays a child of 3 and its own
	// child is released as a singleton instead of vanishing.
	keywords := []types.KeywordRecord{
		{ID: 2, ParentID: 3},
		{ID: 1, ParentID: 2},
		{ID: 3},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3})

	byParent := make(map[int]types.KeywordCluster)
	for _, c := range clusters {
		byParent[c.Parent.ID] = c
	}
	require.Contains(t, byParent, 1)
	require.Contains(t, byParent, 3)
	assert.Empty(t, byParent[1].Children)
	require.Len(t, byParent[3].Children, 1)
	assert.Equal(t, 2, byParent[3].Children[0].ID)
}

func TestBuild_ParentChainFlattenedRegardlessOfOrder(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: 3},
		{ID: 1, ParentID: 2},
		{ID: 2, ParentID: 3},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3})
}

func TestBuild_NestedChainFlattened(t *testing.T) {
	// A record appearing both as a child and with nested children of its
	// own cannot swallow its subtree.
	keywords := []types.KeywordRecord{
		{ID: 3, Keyword: "Flooring", SupportingKeywords: []types.KeywordRecord{
			{ID: 2, Keyword: "Hardwood"},
		}},
		{ID: 2, Keyword: "Hardwood", SupportingKeywords: []types.KeywordRecord{
			{ID: 1, Keyword: "Oak Planks"},
		}},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3})
}

func TestBuild_DeeplyNestedKeywordsAllSurface(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: 3, Keyword: "Flooring", SupportingKeywords: []types.KeywordRecord{
			{ID: 2, Keyword: "Hardwood", SupportingKeywords: []types.KeywordRecord{
				{ID: 1, Keyword: "Oak Planks"},
			}},
		}},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3})
}

func TestBuild_EveryKeywordAppearsExactlyOnce(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: 1, Keyword: "Dentist Vancouver", SupportingKeywords: []types.KeywordRecord{
			{ID: 2, Keyword: "Dentist Vancouver Downtown"},
		}},
		{ID: 3, Keyword: "Teeth Whitening"},
		{ID: 4, Keyword: "Invisalign", ParentID: 3},
		{ID: -1, Keyword: "dental emergency", TrackingOnly: true},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3, 4, -1})
}

func TestBuild_Idempotent(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: 4, Keyword: "Emergency Plumber Vancouver"},
		{ID: 2, Keyword: "Drain Cleaning Vancouver"},
		{ID: 9, Keyword: "Water Heater Repair"},
		{ID: 7, Keyword: "Plumber Vancouver"},
		{ID: 5, Keyword: "Gas Fitting"},
		{ID: 6, Keyword: "Sewer Line Replacement"},
	}

	first := Build(keywords)
	second := Build(keywords)

	assert.Equal(t, first, second)
}

func TestBuild_SimilarityFallbackPairsSharedWords(t *testing.T) {
	// No explicit relationships anywhere: similarity clustering kicks in.
	keywords := []types.KeywordRecord{
		{ID: 1, Keyword: "Dentist Vancouver"},
		{ID: 2, Keyword: "Best Dentist Vancouver"},
		{ID: 3, Keyword: "Teeth Whitening Vancouver"},
		{ID: 4, Keyword: "Aquarium Maintenance"},
		{ID: 5, Keyword: "Dentist Vancouver Reviews"},
		{ID: 6, Keyword: "Emergency Dentist Vancouver"},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3, 4, 5, 6})
	for _, c := range clusters {
		assert.LessOrEqual(t, len(c.Children), 2)
	}

	// At least one main picked up similar children.
	withChildren := 0
	for _, c := range clusters {
		if len(c.Children) > 0 {
			withChildren++
		}
	}
	assert.Greater(t, withChildren, 0)
}

func TestBuild_SimilarityFallbackSortsByRawWordCount(t *testing.T) {
	// "best of the best seo" counts 5 words even though only three are
	// distinct significant ones, so it sorts last and becomes the second
	// main; "local seo" leads and claims the similar pool keywords.
	keywords := []types.KeywordRecord{
		{ID: 1, Keyword: "best of the best seo"},
		{ID: 2, Keyword: "local seo"},
		{ID: 3, Keyword: "seo agency pricing"},
		{ID: 4, Keyword: "cheap local seo services"},
	}

	clusters := Build(keywords)

	assertCoversExactly(t, clusters, []int{1, 2, 3, 4})

	byParent := make(map[int]types.KeywordCluster)
	for _, c := range clusters {
		byParent[c.Parent.ID] = c
	}
	require.Contains(t, byParent, 1)
	assert.Empty(t, byParent[1].Children)
	require.Contains(t, byParent, 2)
	require.Len(t, byParent[2].Children, 2)
	assert.Equal(t, 3, byParent[2].Children[0].ID)
	assert.Equal(t, 4, byParent[2].Children[1].ID)
}

func TestBuild_TrackingOnlyTrailAsSortedSingletons(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: -2, Keyword: "zebra hosting", TrackingOnly: true},
		{ID: 1, Keyword: "Web Design", SupportingKeywords: []types.KeywordRecord{
			{ID: 2, Keyword: "Logo Design"},
		}},
		{ID: -1, Keyword: "apple hosting", TrackingOnly: true},
	}

	clusters := Build(keywords)

	require.Len(t, clusters, 3)
	assert.Equal(t, 1, clusters[0].Parent.ID)
	assert.Equal(t, "apple hosting", clusters[1].Parent.Keyword)
	assert.Equal(t, "zebra hosting", clusters[2].Parent.Keyword)
	assert.Empty(t, clusters[1].Children)
	assert.Empty(t, clusters[2].Children)
}

func TestBuild_ExplicitClustersSortedAlphabetically(t *testing.T) {
	keywords := []types.KeywordRecord{
		{ID: 1, Keyword: "Windows"},
		{ID: 2, Keyword: "Doors", ParentID: 0},
		{ID: 3, Keyword: "Awnings"},
		{ID: 4, Keyword: "Window Screens", ParentID: 1},
	}

	clusters := Build(keywords)

	require.Len(t, clusters, 3)
	assert.Equal(t, "Awnings", clusters[0].Parent.Keyword)
	assert.Equal(t, "Doors", clusters[1].Parent.Keyword)
	assert.Equal(t, "Windows", clusters[2].Parent.Keyword)
}

func TestSimilarity_PlaceNameBoost(t *testing.T) {
	plain := similarity("dentist burnaby", "implants burnaby clinic")
	assert.Greater(t, plain, 0.3)

	noPlace := similarity("dentist office", "implants office clinic")
	assert.Less(t, noPlace, plain)
}

func TestSimilarity_NoSharedWords(t *testing.T) {
	assert.Equal(t, 0.0, similarity("aquarium maintenance", "tax accountant"))
}

// assertCoversExactly checks the no-duplication/no-omission property.
func assertCoversExactly(t *testing.T, clusters []types.KeywordCluster, ids []int) {
	t.Helper()

	seen := make(map[int]int)
	for _, c := range clusters {
		seen[c.Parent.ID]++
		for _, child := range c.Children {
			seen[child.ID]++
		}
	}

	require.Len(t, seen, len(ids))
	for _, id := range ids {
		assert.Equal(t, 1, seen[id], "keyword %d should appear exactly once", id)
	}
}
