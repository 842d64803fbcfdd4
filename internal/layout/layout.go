// Package layout assigns 2-D coordinates to cluster nodes for
// visualization. Parents sit on a centered grid, children on a circle
// around their parent. The layout is a pure function of cluster count
// and viewport size: no physics simulation, no randomness, O(nodes).
package layout

import (
	"math"

	"github.com/jonathan/keyword-atlas/internal/resolver"
	"github.com/jonathan/keyword-atlas/internal/types"
)

const (
	// cellSpacing is the fixed distance between grid cells.
	cellSpacing = 220.0

	// childRadius is the fixed circle radius for child placement.
	childRadius = 80.0

	// gridRatio makes the grid slightly wider than tall:
	// columns = ceil(sqrt(gridRatio * clusterCount)).
	gridRatio = 1.5
)

// Layout positions every cluster node inside the viewport. Children are
// spaced evenly by angle starting at 12 o'clock.
func Layout(clusters []types.KeywordCluster, viewport types.Viewport) []types.NodePosition {
	if len(clusters) == 0 {
		return nil
	}

	cols, rows := GridSize(len(clusters))

	// Center the grid in the viewport.
	originX := viewport.Width/2 - float64(cols-1)*cellSpacing/2
	originY := viewport.Height/2 - float64(rows-1)*cellSpacing/2

	var nodes []types.NodePosition
	for i, cluster := range clusters {
		col := i % cols
		row := i / cols

		px := originX + float64(col)*cellSpacing
		py := originY + float64(row)*cellSpacing

		nodes = append(nodes, types.NodePosition{
			KeywordID:    cluster.Parent.ID,
			Label:        resolver.DisplayText(cluster.Parent),
			X:            px,
			Y:            py,
			IsParent:     true,
			ClusterIndex: i,
		})

		for j, child := range cluster.Children {
			// Even angular spacing, first child at 12 o'clock.
			angle := 2*math.Pi*float64(j)/float64(len(cluster.Children)) - math.Pi/2
			nodes = append(nodes, types.NodePosition{
				KeywordID:    child.ID,
				Label:        resolver.DisplayText(child),
				X:            px + childRadius*math.Cos(angle),
				Y:            py + childRadius*math.Sin(angle),
				IsParent:     false,
				ClusterIndex: i,
			})
		}
	}

	return nodes
}

// GridSize returns the column and row counts for n clusters.
func GridSize(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(gridRatio * float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}
