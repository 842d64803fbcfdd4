package types

// LinkDirection distinguishes inbound from outbound link edges.
type LinkDirection string

const (
	LinkInbound  LinkDirection = "inbound"
	LinkOutbound LinkDirection = "outbound"
)

// LinkRecord is one hyperlink edge from the provider's link report.
// Provider data does not reliably tie a link row to a specific keyword
// page, so association is heuristic (see the links package).
type LinkRecord struct {
	Direction LinkDirection `json:"direction"`
	SourceURL string        `json:"sourceUrl,omitempty"`
	TargetURL string        `json:"targetUrl,omitempty"`

	// Link is a generic URL field some integrations fill instead of the
	// source/target pair.
	Link string `json:"link,omitempty"`

	AnchorText     string `json:"anchorText,omitempty"`
	Category       string `json:"category,omitempty"`
	ParentCategory string `json:"parentCategory,omitempty"`

	// Reciprocal marks a link that is mirrored by the remote site.
	Reciprocal bool `json:"reciprocal,omitempty"`

	// Disabled marks a link toggled inactive without deletion.
	Disabled bool `json:"disabled,omitempty"`
}

// Active reports whether the link should participate in matching.
func (l LinkRecord) Active() bool {
	return !l.Disabled
}

// URLs returns the non-empty URL fields of the link, source first.
func (l LinkRecord) URLs() []string {
	urls := make([]string, 0, 3)
	for _, u := range []string{l.SourceURL, l.TargetURL, l.Link} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
