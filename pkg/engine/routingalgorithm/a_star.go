package routingalgorithm

import (
	"context"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
)

// https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf

type AStar struct {
	g Graph
}

func NewAStar(g Graph) *AStar {
	return &AStar{g: g}
}

func (a *AStar) Name() string {
	return string(AlgorithmAStar)
}

// Search shortest path from start to end guided by the haversine distance to end.
// an unreachable end, unknown ids, or isolated endpoints give an empty path with +Inf distance and no error.
func (a *AStar) Search(ctx context.Context, start, end datastructure.NodeID) (SearchResult, error) {
	return bestFirstSearch(ctx, a.g, a.Name(), start, end, pathEstimatedCost)
}

// pathEstimatedCost straight line meters, a lower bound of any road between the two nodes.
func pathEstimatedCost(from, to datastructure.Node) float64 {
	return geo.NodeDistance(from, to)
}
