package routingalgorithm

import (
	"context"
	"errors"
	"math"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

var (
	ErrNilGraph   = errors.New("search on a nil graph")
	ErrEmptyGraph = errors.New("search on a graph without nodes")
)

type SearchResult struct {
	NodePath      []datastructure.NodeID
	TotalDistance float64 // meters, +Inf when end is unreachable
	// DetailedCoords path geometry stitched from the edge polylines.
	DetailedCoords []datastructure.Coordinate
	VisitedCount   int
	// CurvedCoords display only variant of DetailedCoords, see CurvePath.
	CurvedCoords []datastructure.Coordinate
	Algorithm    string
}

func (r SearchResult) Found() bool {
	return len(r.NodePath) > 0
}

func noPath(alg string, visited int) SearchResult {
	return SearchResult{
		NodePath:       []datastructure.NodeID{},
		TotalDistance:  math.Inf(1),
		DetailedCoords: []datastructure.Coordinate{},
		VisitedCount:   visited,
		Algorithm:      alg,
	}
}

type neighbor struct {
	to     datastructure.NodeID
	weight float64
}

type heuristicFunc func(from, to datastructure.Node) float64

func zeroHeuristic(_, _ datastructure.Node) float64 {
	return 0
}

/*
bestFirstSearch shared frontier loop of a* and dijkstra.

	nodes are unseen (no entry in costSoFar), open (in costSoFar, maybe several stale entries in pq)
	or closed. a node is closed the first time it is popped, later pops of the same node are
	stale and dropped. the goal is done as soon as it gets closed.

state is allocated per call, nothing is shared between searches except the read-only graph.
*/
func bestFirstSearch(ctx context.Context, g Graph, alg string, start, end datastructure.NodeID,
	h heuristicFunc) (SearchResult, error) {
	if g == nil {
		return SearchResult{}, ErrNilGraph
	}
	if dg, ok := g.(*datastructure.Graph); ok && dg == nil {
		return SearchResult{}, ErrNilGraph
	}
	if g.NumNodes() == 0 {
		return SearchResult{}, ErrEmptyGraph
	}

	startNode, okStart := g.GetNode(start)
	endNode, okEnd := g.GetNode(end)
	if !okStart || !okEnd || g.Degree(start) == 0 || g.Degree(end) == 0 {
		return noPath(alg, 0), nil
	}

	costSoFar := map[datastructure.NodeID]float64{start: 0}
	cameFrom := make(map[datastructure.NodeID]datastructure.NodeID)
	closed := make(map[datastructure.NodeID]struct{})
	visited := 0
	edges := make([]neighbor, 0, 8)

	pq := datastructure.NewMinHeap()
	pq.Insert(datastructure.NewPriorityQueueNode(h(startNode, endNode), start))

	for pq.Size() > 0 {
		if err := ctx.Err(); err != nil {
			return SearchResult{}, err
		}

		current, _ := pq.ExtractMin()
		if _, ok := closed[current.Item]; ok {
			continue
		}
		closed[current.Item] = struct{}{}
		visited++

		if current.Item == end {
			path := reconstructNodePath(cameFrom, start, end)
			return SearchResult{
				NodePath:       path,
				TotalDistance:  costSoFar[end],
				DetailedCoords: ExpandPath(g, path),
				VisitedCount:   visited,
				Algorithm:      alg,
			}, nil
		}

		// neighbors are collected first, fn of ForEachNeighbor runs under the graph read lock.
		edges = edges[:0]
		g.ForEachNeighbor(current.Item, func(to datastructure.NodeID, weight float64) {
			edges = append(edges, neighbor{to, weight})
		})

		currentCost := costSoFar[current.Item]
		for _, e := range edges {
			if _, ok := closed[e.to]; ok {
				continue
			}
			newCost := currentCost + e.weight
			if old, seen := costSoFar[e.to]; seen && newCost >= old {
				continue
			}
			costSoFar[e.to] = newCost
			cameFrom[e.to] = current.Item

			toNode, _ := g.GetNode(e.to)
			pq.Insert(datastructure.NewPriorityQueueNode(newCost+h(toNode, endNode), e.to))
		}
	}

	return noPath(alg, visited), nil
}

// reconstructNodePath walk predecessor links back from end.
func reconstructNodePath(cameFrom map[datastructure.NodeID]datastructure.NodeID, start, end datastructure.NodeID) []datastructure.NodeID {
	path := []datastructure.NodeID{end}
	for curr := end; curr != start; {
		curr = cameFrom[curr]
		path = append(path, curr)
	}
	return util.ReverseG(path)
}
