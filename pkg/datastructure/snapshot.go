package datastructure

import (
	"fmt"
	"sort"
)

// GraphSnapshot flat copy of a Graph that can be encoded and stored.
type GraphSnapshot struct {
	Nodes []SnapshotNode
	Edges []SnapshotEdge
}

type SnapshotNode struct {
	ID   int64
	Name string
	Lat  float64
	Lon  float64
}

// SnapshotEdge one entry per undirected edge, From < To. Geometry walks From -> To and is
// empty for straight line edges.
type SnapshotEdge struct {
	From     int64
	To       int64
	Weight   float64
	Geometry []Coordinate
}

func (g *Graph) Snapshot() GraphSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := GraphSnapshot{
		Nodes: make([]SnapshotNode, 0, len(g.nodes)),
	}
	for _, n := range g.nodes {
		snap.Nodes = append(snap.Nodes, SnapshotNode{ID: int64(n.ID), Name: n.Name, Lat: n.Lat, Lon: n.Lon})
	}
	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].ID < snap.Nodes[j].ID })

	for from, adj := range g.adjacency {
		for to, w := range adj {
			if from >= to {
				continue
			}
			edge := SnapshotEdge{From: int64(from), To: int64(to), Weight: w}
			geom := g.geometry[edgeKey{from, to}]
			if !geom.straightLine {
				edge.Geometry = make([]Coordinate, len(geom.points))
				copy(edge.Geometry, geom.points)
			}
			snap.Edges = append(snap.Edges, edge)
		}
	}
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].From != snap.Edges[j].From {
			return snap.Edges[i].From < snap.Edges[j].From
		}
		return snap.Edges[i].To < snap.Edges[j].To
	})
	return snap
}

func NewGraphFromSnapshot(snap GraphSnapshot) (*Graph, error) {
	g := NewGraph()
	for _, n := range snap.Nodes {
		g.AddNode(NodeID(n.ID), n.Name, n.Lon, n.Lat)
	}
	for i, e := range snap.Edges {
		if err := g.AddEdge(NodeID(e.From), NodeID(e.To), e.Weight, e.Geometry); err != nil {
			return nil, fmt.Errorf("snapshot edge %d: %w", i, err)
		}
	}
	return g, nil
}
