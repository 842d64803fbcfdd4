// Package types defines the shared data model for keyword clustering,
// SERP matching, link association and layout.
package types

// KeywordRecord is one tracked topic or phrase as delivered by the
// provider. Payloads are heterogeneous across integrations: at most one
// of the text fields is authoritative per record, and the resolver picks
// the display text in a fixed priority order.
type KeywordRecord struct {
	ID int `json:"id"`

	// Text fields, in resolution priority order.
	KeywordTitle string `json:"keywordTitle,omitempty"`
	Keyword      string `json:"keyword,omitempty"`
	MetaTitle    string `json:"metaTitle,omitempty"`

	// PostContent is an embedded HTML body snippet; a heading inside it
	// is the last text source tried before the numeric fallback.
	PostContent string `json:"postContent,omitempty"`

	// LinkedURL is the canonical page URL for this keyword, if a content
	// page exists.
	LinkedURL string `json:"linkedUrl,omitempty"`

	// ParentID links to a parent record when the provider declares the
	// relationship flat. Zero means no declared parent.
	ParentID int `json:"parentId,omitempty"`

	// SupportingKeywords holds embedded child records when the provider
	// nests children instead of using ParentID.
	SupportingKeywords []KeywordRecord `json:"supportingKeywords,omitempty"`

	Categories []string `json:"categories,omitempty"`

	// TrackingOnly marks a keyword that exists purely for rank tracking:
	// it has no content page and is synthesized when a ranking snapshot
	// references a keyword absent from the content list.
	TrackingOnly bool `json:"trackingOnly,omitempty"`
}

// HasPage reports whether the keyword has a real content page.
func (k KeywordRecord) HasPage() bool {
	return !k.TrackingOnly
}

// KeywordCluster is a parent keyword plus up to two supporting children.
// Clusters are a pure function of the current keyword list and are
// rebuilt from scratch whenever the list changes.
type KeywordCluster struct {
	Parent   KeywordRecord   `json:"parent"`
	Children []KeywordRecord `json:"children"`
}
