package routingalgorithm

import (
	"context"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

type Dijkstra struct {
	g Graph
}

func NewDijkstra(g Graph) *Dijkstra {
	return &Dijkstra{g: g}
}

func (d *Dijkstra) Name() string {
	return string(AlgorithmDijkstra)
}

// Search uniform cost search from start to end, stops when end is settled.
// if every edge on the result is a straight line fallback, CurvedCoords carries a bent copy of the
// geometry for rendering.
func (d *Dijkstra) Search(ctx context.Context, start, end datastructure.NodeID) (SearchResult, error) {
	res, err := bestFirstSearch(ctx, d.g, d.Name(), start, end, zeroHeuristic)
	if err != nil {
		return res, err
	}

	if len(res.NodePath) >= 2 && allStraightLines(d.g, res.NodePath) {
		res.CurvedCoords = CurvePath(res.DetailedCoords)
	}
	return res, nil
}

func allStraightLines(g GeometryProvider, path []datastructure.NodeID) bool {
	for i := 0; i+1 < len(path); i++ {
		if !g.IsStraightLine(path[i], path[i+1]) {
			return false
		}
	}
	return true
}
