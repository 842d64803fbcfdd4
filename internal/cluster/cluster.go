// Package cluster groups keyword records into parent/children topic
// clusters. Explicit provider-supplied relationships win when present;
// otherwise a text-similarity fallback pairs keywords heuristically.
// Tracking-only keywords always trail as singleton clusters.
package cluster

import (
	"sort"

	"github.com/jonathan/keyword-atlas/internal/resolver"
	"github.com/jonathan/keyword-atlas/internal/textnorm"
	"github.com/jonathan/keyword-atlas/internal/types"
)

const (
	// maxChildren caps children per cluster. UI real estate constraint,
	// fixed policy.
	maxChildren = 2

	// similarityThreshold is the minimum score a supporting-pool
	// candidate needs to join a cluster in the fallback path.
	similarityThreshold = 0.3

	// placeBoost multiplies the similarity score when a shared word is a
	// known place name: local-intent keywords cluster by location.
	placeBoost = 1.2

	// mainStride designates roughly one third of sorted keywords as
	// cluster mains in the fallback path (every third item).
	mainStride = 3
)

// Build groups keywords into clusters. Never fails; an empty input
// yields an empty cluster list. Every input keyword lands in exactly one
// cluster, as a parent or as a child.
func Build(keywords []types.KeywordRecord) []types.KeywordCluster {
	content, trackingOnly := partition(keywords)

	a := ingest(content)

	var clusters []types.KeywordCluster
	if a.hasExplicit {
		clusters = a.explicitClusters()
	} else {
		clusters = similarityClusters(a.ordered())
	}

	sortClusters(clusters)
	return append(clusters, trailingSingletons(trackingOnly)...)
}

// partition splits input into content keywords and tracking-only ones.
func partition(keywords []types.KeywordRecord) (content, trackingOnly []types.KeywordRecord) {
	for _, k := range keywords {
		if k.TrackingOnly {
			trackingOnly = append(trackingOnly, k)
		} else {
			content = append(content, k)
		}
	}
	return content, trackingOnly
}

// arena is the normalized adjacency representation built on ingestion:
// one record per id plus a child-to-parent index. Both relationship
// encodings (nested SupportingKeywords and flat ParentID) collapse into
// it so the rest of the pipeline never branches on source format.
type arena struct {
	records     map[int]types.KeywordRecord
	order       []int       // first-seen order of ids
	parentOf    map[int]int // child id -> parent id
	children    map[int][]int
	hasExplicit bool
}

func ingest(keywords []types.KeywordRecord) *arena {
	a := &arena{
		records:  make(map[int]types.KeywordRecord),
		parentOf: make(map[int]int),
		children: make(map[int][]int),
	}

	for _, k := range keywords {
		a.add(k)
	}

	// Nested children first: they are the primary relationship source.
	for _, k := range keywords {
		a.claimNested(k)
	}

	// Merge flat ParentID declarations for records not already claimed.
	// A conflicting ParentID loses to the nested encoding.
	for _, id := range a.order {
		rec := a.records[id]
		if rec.ParentID == 0 || rec.ParentID == id {
			continue
		}
		if _, exists := a.records[rec.ParentID]; !exists {
			continue
		}
		a.claim(id, rec.ParentID)
	}

	a.flattenChains()

	return a
}

// claimNested registers a record's embedded descendants at every depth.
func (a *arena) claimNested(parent types.KeywordRecord) {
	for _, child := range parent.SupportingKeywords {
		a.add(child)
		a.claim(child.ID, parent.ID)
		a.claimNested(child)
	}
}

func (a *arena) add(k types.KeywordRecord) {
	if _, seen := a.records[k.ID]; seen {
		return
	}
	a.records[k.ID] = k
	a.order = append(a.order, k.ID)
}

// claim records a parent/child edge unless the child is already claimed.
// A record is a child of at most one cluster.
func (a *arena) claim(childID, parentID int) {
	if childID == parentID {
		return
	}
	if _, claimed := a.parentOf[childID]; claimed {
		return
	}
	a.parentOf[childID] = parentID
	a.children[parentID] = append(a.children[parentID], childID)
	a.hasExplicit = true
}

// flattenChains breaks parent chains so no record is both a child and a
// parent. The middle record keeps its child slot; its own children are
// released to become top-level parents, mirroring the overflow promotion
// in explicitClusters. Claim order cannot hide a keyword.
func (a *arena) flattenChains() {
	for _, id := range a.order {
		if _, isChild := a.parentOf[id]; !isChild {
			continue
		}
		for _, cid := range a.children[id] {
			delete(a.parentOf, cid)
		}
		delete(a.children, id)
	}
}

func (a *arena) ordered() []types.KeywordRecord {
	out := make([]types.KeywordRecord, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.records[id])
	}
	return out
}

// explicitClusters builds clusters strictly from declared relationships:
// every unclaimed record becomes a parent, its children truncated to
// maxChildren. Children beyond the cap are promoted to childless
// parents so no input keyword vanishes from the output.
func (a *arena) explicitClusters() []types.KeywordCluster {
	var clusters []types.KeywordCluster
	var overflow []int

	for _, id := range a.order {
		if _, isChild := a.parentOf[id]; isChild {
			continue
		}

		childIDs := a.children[id]
		if len(childIDs) > maxChildren {
			overflow = append(overflow, childIDs[maxChildren:]...)
			childIDs = childIDs[:maxChildren]
		}

		children := make([]types.KeywordRecord, 0, len(childIDs))
		for _, cid := range childIDs {
			children = append(children, a.records[cid])
		}
		clusters = append(clusters, types.KeywordCluster{Parent: a.records[id], Children: children})
	}

	for _, id := range overflow {
		clusters = append(clusters, types.KeywordCluster{Parent: a.records[id]})
	}

	return clusters
}

// similarityClusters is the fallback when the provider declared no
// relationships at all. Keywords sorted by word count then alphabetically
// split into mains (every third item) and a supporting pool; each main
// greedily takes up to maxChildren pool candidates scoring at or above
// the threshold, without reuse.
func similarityClusters(keywords []types.KeywordRecord) []types.KeywordCluster {
	if len(keywords) == 0 {
		return nil
	}

	texts := make(map[int]string, len(keywords))
	for _, k := range keywords {
		texts[k.ID] = resolver.DisplayText(k)
	}

	sorted := make([]types.KeywordRecord, len(keywords))
	copy(sorted, keywords)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi := len(textnorm.Words(texts[sorted[i].ID]))
		wj := len(textnorm.Words(texts[sorted[j].ID]))
		if wi != wj {
			return wi < wj
		}
		return texts[sorted[i].ID] < texts[sorted[j].ID]
	})

	var mains, pool []types.KeywordRecord
	for i, k := range sorted {
		if i%mainStride == 0 {
			mains = append(mains, k)
		} else {
			pool = append(pool, k)
		}
	}

	taken := make([]bool, len(pool))
	var clusters []types.KeywordCluster

	for _, main := range mains {
		cluster := types.KeywordCluster{Parent: main}
		for idx := range pool {
			if len(cluster.Children) >= maxChildren {
				break
			}
			if taken[idx] {
				continue
			}
			if similarity(texts[main.ID], texts[pool[idx].ID]) >= similarityThreshold {
				cluster.Children = append(cluster.Children, pool[idx])
				taken[idx] = true
			}
		}
		clusters = append(clusters, cluster)
	}

	// Unclaimed pool keywords stay visible as singleton clusters.
	for idx, k := range pool {
		if !taken[idx] {
			clusters = append(clusters, types.KeywordCluster{Parent: k})
		}
	}

	return clusters
}

// similarity scores two keyword texts by the ratio of shared significant
// words to the smaller word set, boosted when a shared word is a known
// place name.
func similarity(a, b string) float64 {
	setA, setB := wordSet(a), wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	boosted := false
	for w := range setA {
		if setB[w] {
			shared++
			if placeNames[w] {
				boosted = true
			}
		}
	}
	if shared == 0 {
		return 0
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}

	score := float64(shared) / float64(smaller)
	if boosted {
		score *= placeBoost
	}
	return score
}

func sortClusters(clusters []types.KeywordCluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return resolver.DisplayText(clusters[i].Parent) < resolver.DisplayText(clusters[j].Parent)
	})
}

// trailingSingletons turns tracking-only keywords into childless
// clusters sorted alphabetically by resolved text. They always come
// after every content cluster.
func trailingSingletons(trackingOnly []types.KeywordRecord) []types.KeywordCluster {
	sorted := make([]types.KeywordRecord, len(trackingOnly))
	copy(sorted, trackingOnly)
	sort.SliceStable(sorted, func(i, j int) bool {
		return resolver.DisplayText(sorted[i]) < resolver.DisplayText(sorted[j])
	})

	clusters := make([]types.KeywordCluster, 0, len(sorted))
	for _, k := range sorted {
		clusters = append(clusters, types.KeywordCluster{Parent: k})
	}
	return clusters
}
