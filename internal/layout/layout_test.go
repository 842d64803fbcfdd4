package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/keyword-atlas/internal/types"
)

func makeClusters(n int) []types.KeywordCluster {
	clusters := make([]types.KeywordCluster, n)
	for i := range clusters {
		clusters[i] = types.KeywordCluster{Parent: types.KeywordRecord{ID: i + 1, Keyword: "kw"}}
	}
	return clusters
}

func TestGridSize_NineClusters(t *testing.T) {
	cols, rows := GridSize(9)

	// ceil(sqrt(9 * 1.5)) = 4 columns, 3 rows.
	assert.Equal(t, 4, cols)
	assert.Equal(t, 3, rows)
}

func TestGridSize_SingleCluster(t *testing.T) {
	cols, rows := GridSize(1)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 1, rows)
}

func TestGridSize_Zero(t *testing.T) {
	cols, rows := GridSize(0)
	assert.Equal(t, 0, cols)
	assert.Equal(t, 0, rows)
}

func TestLayout_Empty(t *testing.T) {
	assert.Nil(t, Layout(nil, types.Viewport{Width: 1200, Height: 800}))
}

func TestLayout_GridCenteredInViewport(t *testing.T) {
	viewport := types.Viewport{Width: 1200, Height: 800}

	nodes := Layout(makeClusters(9), viewport)

	require.Len(t, nodes, 9)

	// The grid's bounding box midpoint is the viewport center.
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	assert.InDelta(t, 600, (minX+maxX)/2, 0.001)
	assert.InDelta(t, 400, (minY+maxY)/2, 0.001)
}

func TestLayout_ChildrenOnCircleFromTwelveOClock(t *testing.T) {
	clusters := []types.KeywordCluster{
		{
			Parent: types.KeywordRecord{ID: 1, Keyword: "Parent"},
			Children: []types.KeywordRecord{
				{ID: 2, Keyword: "First"},
				{ID: 3, Keyword: "Second"},
			},
		},
	}

	nodes := Layout(clusters, types.Viewport{Width: 800, Height: 600})

	require.Len(t, nodes, 3)
	parent := nodes[0]
	first := nodes[1]
	second := nodes[2]

	// First child sits straight above the parent (12 o'clock).
	assert.InDelta(t, parent.X, first.X, 0.001)
	assert.InDelta(t, parent.Y-childRadius, first.Y, 0.001)

	// Second child sits diametrically opposite.
	assert.InDelta(t, parent.X, second.X, 0.001)
	assert.InDelta(t, parent.Y+childRadius, second.Y, 0.001)

	// Both children keep the fixed radius.
	for _, child := range []types.NodePosition{first, second} {
		dist := math.Hypot(child.X-parent.X, child.Y-parent.Y)
		assert.InDelta(t, childRadius, dist, 0.001)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	clusters := makeClusters(7)
	viewport := types.Viewport{Width: 1024, Height: 768}

	assert.Equal(t, Layout(clusters, viewport), Layout(clusters, viewport))
}

func TestLayout_ClusterIndexAssigned(t *testing.T) {
	clusters := []types.KeywordCluster{
		{Parent: types.KeywordRecord{ID: 1, Keyword: "A"}, Children: []types.KeywordRecord{{ID: 2, Keyword: "B"}}},
		{Parent: types.KeywordRecord{ID: 3, Keyword: "C"}},
	}

	nodes := Layout(clusters, types.Viewport{Width: 800, Height: 600})

	require.Len(t, nodes, 3)
	assert.Equal(t, 0, nodes[0].ClusterIndex)
	assert.Equal(t, 0, nodes[1].ClusterIndex)
	assert.Equal(t, 1, nodes[2].ClusterIndex)
	assert.True(t, nodes[0].IsParent)
	assert.False(t, nodes[1].IsParent)
}

func TestView_PanAccumulates(t *testing.T) {
	v := NewView()
	v.Pan(10, -5)
	v.Pan(2, 3)

	assert.Equal(t, 12.0, v.PanX)
	assert.Equal(t, -2.0, v.PanY)
}

func TestView_ZoomClamped(t *testing.T) {
	v := NewView()

	v.SetZoom(100)
	assert.Equal(t, maxZoom, v.Zoom)

	v.SetZoom(0.0001)
	assert.Equal(t, minZoom, v.Zoom)
}

func TestView_ZoomBy(t *testing.T) {
	v := NewView()
	v.ZoomBy(2)
	assert.Equal(t, 2.0, v.Zoom)
}

func TestView_HoverAndSelect(t *testing.T) {
	v := NewView()

	v.Hover(4)
	require.NotNil(t, v.HoveredID)
	assert.Equal(t, 4, *v.HoveredID)

	v.ClearHover()
	assert.Nil(t, v.HoveredID)

	v.Select(4)
	require.NotNil(t, v.SelectedID)

	// Selecting the same node again toggles it off.
	v.Select(4)
	assert.Nil(t, v.SelectedID)
}

func TestView_Project(t *testing.T) {
	v := NewView()
	v.SetZoom(2)
	v.Pan(10, 20)

	x, y := v.Project(5, 7)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 34.0, y)
}
