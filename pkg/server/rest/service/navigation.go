package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"

	"github.com/lintang-b-s/campusnav/pkg/concurrent"
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/connectivity"
	"github.com/lintang-b-s/campusnav/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/campusnav/pkg/guidance"
	"github.com/lintang-b-s/campusnav/pkg/kv"
	"github.com/lintang-b-s/campusnav/pkg/server"
	"github.com/lintang-b-s/campusnav/pkg/snap"
)

type Graph interface {
	routingalgorithm.Graph
	Nodes() []datastructure.Node
	EdgeWeight(from, to datastructure.NodeID) (float64, bool)
}

type KVDB interface {
	GetNearbyNodes(lat, lon float64) ([]datastructure.Node, error)
	GetNodesWithinRadius(lat, lon, radiusKm float64) ([]datastructure.Node, error)
}

type Snapper interface {
	NearestK(lat, lon float64, k int) []snap.SnappedNode
}

// SearchObserver gets every finished search, used for metrics.
type SearchObserver interface {
	ObserveSearch(alg string, found bool, visited int, elapsed time.Duration)
}

type Options struct {
	BatchWorkers  int
	SearchTimeout time.Duration
	// Bound campus area, snapping outside of it (padded by BoundPadding degrees) is refused.
	// zero bound disables the check
	Bound        orb.Bound
	BoundPadding float64
}

type NavigationService struct {
	graph      Graph
	kv         KVDB
	snapper    Snapper
	observer   SearchObserver
	components *connectivity.Components
	opts       Options
}

// NewNavigationService kv, snapper and observer may be nil. graph must not change afterwards.
func NewNavigationService(graph Graph, kvDB KVDB, snapper Snapper, observer SearchObserver, opts Options) *NavigationService {
	if opts.BatchWorkers < 1 {
		opts.BatchWorkers = 1
	}
	return &NavigationService{
		graph:      graph,
		kv:         kvDB,
		snapper:    snapper,
		observer:   observer,
		components: connectivity.ConnectedComponents(graph),
		opts:       opts,
	}
}

type NodeInfo struct {
	Node   datastructure.Node
	Degree int
	// Component connected component index, nodes in different components have no route between them
	Component int
}

func (uc *NavigationService) ListNodes(ctx context.Context) []NodeInfo {
	nodes := uc.graph.Nodes()
	infos := make([]NodeInfo, 0, len(nodes))
	for _, n := range nodes {
		component, _ := uc.components.Of(n.ID)
		infos = append(infos, NodeInfo{Node: n, Degree: uc.graph.Degree(n.ID), Component: component})
	}
	return infos
}

type RouteResult struct {
	Start        datastructure.Node
	End          datastructure.Node
	Names        []string
	Result       routingalgorithm.SearchResult
	Instructions []guidance.WalkingInstruction
	Elapsed      time.Duration
}

/*
ShortestPath runs one search. unknown start / end ids and unreachable ends are ErrNotFound,
an unknown algorithm is ErrBadParamInput.
*/
func (uc *NavigationService) ShortestPath(ctx context.Context, start, end datastructure.NodeID,
	alg routingalgorithm.Algorithm) (RouteResult, error) {
	startNode, ok := uc.graph.GetNode(start)
	if !ok {
		return RouteResult{}, server.WrapErrorf(datastructure.ErrUnknownNode, server.ErrNotFound, "start node %d not found", start)
	}
	endNode, ok := uc.graph.GetNode(end)
	if !ok {
		return RouteResult{}, server.WrapErrorf(datastructure.ErrUnknownNode, server.ErrNotFound, "end node %d not found", end)
	}

	searcher, err := routingalgorithm.NewSearcher(alg, uc.graph)
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "unknown algorithm %q", alg)
	}

	if uc.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.SearchTimeout)
		defer cancel()
	}

	startTime := time.Now()
	res, err := searcher.Search(ctx, start, end)
	elapsed := time.Since(startTime)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "search from %d to %d timed out", start, end)
		}
		return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	if uc.observer != nil {
		uc.observer.ObserveSearch(searcher.Name(), res.Found(), res.VisitedCount, elapsed)
	}

	if !res.Found() {
		return RouteResult{}, server.NewErrorf(server.ErrNotFound, "no path from %s to %s", label(startNode), label(endNode))
	}

	names := make([]string, 0, len(res.NodePath))
	for _, id := range res.NodePath {
		n, _ := uc.graph.GetNode(id)
		names = append(names, n.Name)
	}

	instructions, err := guidance.NewInstructionsFromPath(uc.graph).GetWalkingInstructions(res.NodePath)
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	return RouteResult{
		Start:        startNode,
		End:          endNode,
		Names:        names,
		Result:       res,
		Instructions: instructions,
		Elapsed:      elapsed,
	}, nil
}

func label(n datastructure.Node) string {
	if n.Name == "" {
		return fmt.Sprintf("%d", n.ID)
	}
	return fmt.Sprintf("%s (%d)", n.Name, n.ID)
}

type PairResult struct {
	Index int
	Route RouteResult
	Err   error
}

// ShortestPathMany every pair is an independent search, run on the worker pool. results keep the
// order of pairs.
func (uc *NavigationService) ShortestPathMany(ctx context.Context, pairs [][2]datastructure.NodeID,
	alg routingalgorithm.Algorithm) ([]PairResult, error) {
	if _, err := routingalgorithm.NewSearcher(alg, uc.graph); err != nil {
		return nil, server.WrapErrorf(err, server.ErrBadParamInput, "unknown algorithm %q", alg)
	}

	workers := concurrent.NewWorkerPool[concurrent.RouteQuery, PairResult](uc.opts.BatchWorkers, len(pairs))
	for i, p := range pairs {
		workers.AddJob(concurrent.NewRouteQuery(i, p[0], p[1]))
	}
	workers.Close()
	workers.Start(func(job concurrent.RouteQuery) PairResult {
		route, err := uc.ShortestPath(ctx, job.Start, job.End, alg)
		return PairResult{Index: job.Index, Route: route, Err: err}
	})
	workers.Wait()

	results := make([]PairResult, len(pairs))
	for res := range workers.CollectResults() {
		results[res.Index] = res
	}
	return results, nil
}

// Snap nearest k graph nodes to a coordinate.
func (uc *NavigationService) Snap(ctx context.Context, lat, lon float64, k int) ([]snap.SnappedNode, error) {
	if uc.snapper == nil {
		return nil, server.NewErrorf(server.ErrInternalServerError, "snapper not loaded")
	}
	if !uc.opts.Bound.IsZero() && !uc.opts.Bound.Pad(uc.opts.BoundPadding).Contains(orb.Point{lon, lat}) {
		return nil, server.NewErrorf(server.ErrNotFound, "sorry, the location you entered is not covered by the campus map")
	}

	snapped := uc.snapper.NearestK(lat, lon, k)
	if len(snapped) == 0 {
		return nil, server.NewErrorf(server.ErrNotFound, "no node near %f,%f", lat, lon)
	}
	return snapped, nil
}

const snapCandidates = 5

/*
SnapPair snaps both coordinates to graph nodes that lie in the same connected component. among the
nearest candidates of each side it picks the pair with the smallest summed snap distance, so a
coordinate next to an isolated building is not routed from a node nothing can reach.
*/
func (uc *NavigationService) SnapPair(ctx context.Context, from, to datastructure.Coordinate) (snap.SnappedNode, snap.SnappedNode, error) {
	fromCandidates, err := uc.Snap(ctx, from.Lat, from.Lon, snapCandidates)
	if err != nil {
		return snap.SnappedNode{}, snap.SnappedNode{}, err
	}
	toCandidates, err := uc.Snap(ctx, to.Lat, to.Lon, snapCandidates)
	if err != nil {
		return snap.SnappedNode{}, snap.SnappedNode{}, err
	}

	var (
		bestFrom, bestTo snap.SnappedNode
		bestDist         = math.Inf(1)
	)
	for _, f := range fromCandidates {
		for _, t := range toCandidates {
			if !uc.components.Connected(f.Node.ID, t.Node.ID) {
				continue
			}
			if d := f.Distance + t.Distance; d < bestDist {
				bestFrom, bestTo, bestDist = f, t, d
			}
		}
	}
	if math.IsInf(bestDist, 1) {
		return snap.SnappedNode{}, snap.SnappedNode{}, server.NewErrorf(server.ErrNotFound,
			"no connected nodes near %f,%f and %f,%f", from.Lat, from.Lon, to.Lat, to.Lon)
	}
	return bestFrom, bestTo, nil
}

// ShortestPathByCoords snaps both coordinates with SnapPair and searches between the snapped nodes.
func (uc *NavigationService) ShortestPathByCoords(ctx context.Context, from, to datastructure.Coordinate,
	alg routingalgorithm.Algorithm) (RouteResult, error) {
	start, end, err := uc.SnapPair(ctx, from, to)
	if err != nil {
		return RouteResult{}, err
	}
	return uc.ShortestPath(ctx, start.Node.ID, end.Node.ID, alg)
}

// Nearby nodes from the h3 index. radiusKm > 0 returns everything within the radius, otherwise
// the nodes of the nearest non-empty cell ring.
func (uc *NavigationService) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]datastructure.Node, error) {
	if uc.kv == nil {
		return nil, server.NewErrorf(server.ErrNotFound, "nearby index not loaded")
	}

	var (
		nodes []datastructure.Node
		err   error
	)
	if radiusKm > 0 {
		nodes, err = uc.kv.GetNodesWithinRadius(lat, lon, radiusKm)
	} else {
		nodes, err = uc.kv.GetNearbyNodes(lat, lon)
	}
	if errors.Is(err, kv.ErrNodesNotFound) {
		return nil, server.WrapErrorf(err, server.ErrNotFound, "no node near %f,%f", lat, lon)
	}
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return nodes, nil
}
