package types

// Viewport is the pixel size of the drawing surface the layout targets.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NodePosition is one positioned cluster node. Parents sit on a grid,
// children on a circle around their parent.
type NodePosition struct {
	KeywordID    int     `json:"keywordId"`
	Label        string  `json:"label"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	IsParent     bool    `json:"isParent"`
	ClusterIndex int     `json:"clusterIndex"`
}
