package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/paulmach/orb"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/connectivity"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/osmparser"
)

var ErrNoNodeSource = errors.New("either a nodes csv or an osm file is required")

type BuildStats struct {
	Nodes              int
	Edges              int
	EdgesWithGeometry  int
	MalformedWaypoints int
	// Components connected components, more than one means some places cannot reach each other
	Components int
	// Bound bounding box of every node, orb points are (lon, lat)
	Bound orb.Bound
}

/*
BuildGraph adds every node, then every edge. waypoint lists only hold the interior points of a
road, so the endpoint coordinates are added when the list does not already start / end there.
an edge without a distance gets the length of its polyline, or the straight line distance.

an edge pointing at an unknown node or carrying a bad weight aborts the build.
*/
func BuildGraph(nodes []NodeRecord, edges []EdgeRecord) (*datastructure.Graph, BuildStats, error) {
	g := datastructure.NewGraph()
	stats := BuildStats{}

	for _, n := range nodes {
		g.AddNode(n.ID, n.Name, n.Lon, n.Lat)
	}
	stats.Nodes = g.NumNodes()
	stats.Bound = NodesBound(g.Nodes())

	for _, e := range edges {
		from, okFrom := g.GetNode(e.From)
		to, okTo := g.GetNode(e.To)
		if !okFrom || !okTo {
			missing := e.From
			if okFrom {
				missing = e.To
			}
			return nil, stats, fmt.Errorf("edges row %d references node %d: %w", e.Row, missing, datastructure.ErrUnknownNode)
		}

		var polyline []datastructure.Coordinate
		if len(e.Waypoints) > 0 {
			polyline = anchorWaypoints(e.Waypoints, from.Coordinate(), to.Coordinate())
			stats.EdgesWithGeometry++
		}
		if e.MalformedWaypoints {
			stats.MalformedWaypoints++
		}

		weight := e.Weight
		if weight == 0 {
			weight = fallbackWeight(from, to, polyline)
		}

		if err := g.AddEdge(e.From, e.To, weight, polyline); err != nil {
			return nil, stats, fmt.Errorf("edges row %d: %w", e.Row, err)
		}
	}
	stats.Edges = g.NumEdges()
	stats.Components = connectivity.ConnectedComponents(g).Count()

	log.Printf("graph built: %d nodes, %d edges (%d with road geometry, %d malformed waypoints), %d components",
		stats.Nodes, stats.Edges, stats.EdgesWithGeometry, stats.MalformedWaypoints, stats.Components)
	return g, stats, nil
}

// NodesBound bounding box of nodes, zero for no nodes.
func NodesBound(nodes []datastructure.Node) orb.Bound {
	if len(nodes) == 0 {
		return orb.Bound{}
	}
	points := make(orb.MultiPoint, 0, len(nodes))
	for _, n := range nodes {
		points = append(points, orb.Point{n.Lon, n.Lat})
	}
	return points.Bound()
}

func anchorWaypoints(waypoints []datastructure.Coordinate, from, to datastructure.Coordinate) []datastructure.Coordinate {
	polyline := make([]datastructure.Coordinate, 0, len(waypoints)+2)
	if waypoints[0] != from {
		polyline = append(polyline, from)
	}
	polyline = append(polyline, waypoints...)
	if waypoints[len(waypoints)-1] != to {
		polyline = append(polyline, to)
	}
	return polyline
}

func fallbackWeight(from, to datastructure.Node, polyline []datastructure.Coordinate) float64 {
	if len(polyline) >= 2 {
		return geo.PolylineLength(polyline)
	}
	return geo.NodeDistance(from, to)
}

// LoadOSMNodes named nodes of an osm xml or pbf stream.
func LoadOSMNodes(ctx context.Context, r io.Reader, pbf bool) ([]NodeRecord, error) {
	pois, err := osmparser.NewOSMPOIParser(pbf).Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	nodes := make([]NodeRecord, 0, len(pois))
	for _, p := range pois {
		nodes = append(nodes, NodeRecord{
			ID:      datastructure.NodeID(p.ID),
			Name:    p.Name,
			Address: p.Address,
			Lon:     p.Lon,
			Lat:     p.Lat,
		})
	}
	return nodes, nil
}

/*
LoadGraphFromFiles nodes come from nodesPath, or from osmPath (.pbf is read as protobuf, anything
else as xml) when nodesPath is empty. edges always come from edgesPath.
*/
func LoadGraphFromFiles(ctx context.Context, nodesPath, edgesPath, osmPath string) (*datastructure.Graph, []NodeRecord, BuildStats, error) {
	var (
		nodes []NodeRecord
		err   error
	)
	switch {
	case nodesPath != "":
		log.Printf("reading nodes csv %s", nodesPath)
		nodes, err = readFile(nodesPath, ReadNodesCSV)
	case osmPath != "":
		log.Printf("reading osm file %s", osmPath)
		nodes, err = readFile(osmPath, func(r io.Reader) ([]NodeRecord, error) {
			return LoadOSMNodes(ctx, r, strings.HasSuffix(osmPath, ".pbf"))
		})
	default:
		err = ErrNoNodeSource
	}
	if err != nil {
		return nil, nil, BuildStats{}, err
	}

	log.Printf("reading edges csv %s", edgesPath)
	edges, err := readFile(edgesPath, ReadEdgesCSV)
	if err != nil {
		return nil, nil, BuildStats{}, err
	}

	g, stats, err := BuildGraph(nodes, edges)
	if err != nil {
		return nil, nil, stats, err
	}
	return g, nodes, stats, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
