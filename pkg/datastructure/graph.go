package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

var (
	ErrUnknownNode   = errors.New("node not found in graph")
	ErrInvalidWeight = errors.New("edge weight must be positive and finite")
	ErrSelfLoop      = errors.New("edge endpoints must differ")
)

type NodeID int64

type Node struct {
	ID   NodeID  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewNode(id NodeID, name string, lon, lat float64) Node {
	return Node{ID: id, Name: name, Lat: lat, Lon: lon}
}

func (n Node) Coordinate() Coordinate {
	return NewCoordinate(n.Lat, n.Lon)
}

type edgeKey struct {
	from NodeID
	to   NodeID
}

type edgeGeometry struct {
	points       []Coordinate
	straightLine bool // no waypoints were supplied, points are just the two endpoints
}

/*
Graph campus road network. undirected weighted adjacency + a polyline for every directed edge.

built once by the ingestion layer and read by any number of concurrent searches afterwards.
every accessor takes the read lock and returns copies, nothing handed out aliases the internal maps.
*/
type Graph struct {
	mu sync.RWMutex

	nodes     map[NodeID]Node
	adjacency map[NodeID]map[NodeID]float64
	geometry  map[edgeKey]edgeGeometry
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[NodeID]Node),
		adjacency: make(map[NodeID]map[NodeID]float64),
		geometry:  make(map[edgeKey]edgeGeometry),
	}
}

// AddNode inserts or overwrites a node.
func (g *Graph) AddNode(id NodeID, name string, lon, lat float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[id] = NewNode(id, name, lon, lat)
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = make(map[NodeID]float64)
	}
}

/*
AddEdge inserts the undirected edge {from, to}. polyline is the road shape walked from -> to,
the reverse direction stores the reversed copy. an empty polyline degenerates to the straight
line between the two node coordinates.

both endpoints must already be in the graph.
*/
func (g *Graph) AddEdge(from, to NodeID, weight float64, polyline []Coordinate) error {
	if weight <= 0 || math.IsInf(weight, 0) || math.IsNaN(weight) {
		return fmt.Errorf("edge %d-%d weight %v: %w", from, to, weight, ErrInvalidWeight)
	}
	if from == to {
		return fmt.Errorf("edge %d-%d: %w", from, to, ErrSelfLoop)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("edge %d-%d references node %d: %w", from, to, from, ErrUnknownNode)
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("edge %d-%d references node %d: %w", from, to, to, ErrUnknownNode)
	}

	g.adjacency[from][to] = weight
	g.adjacency[to][from] = weight

	forward := edgeGeometry{}
	if len(polyline) == 0 {
		forward.points = []Coordinate{fromNode.Coordinate(), toNode.Coordinate()}
		forward.straightLine = true
	} else {
		forward.points = make([]Coordinate, len(polyline))
		copy(forward.points, polyline)
	}

	g.geometry[edgeKey{from, to}] = forward
	g.geometry[edgeKey{to, from}] = edgeGeometry{
		points:       ReverseCoordinates(forward.points),
		straightLine: forward.straightLine,
	}
	return nil
}

// Neighbors copy of the adjacency of id. empty for unknown or isolated nodes.
func (g *Graph) Neighbors(id NodeID) map[NodeID]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	neighbors := make(map[NodeID]float64, len(g.adjacency[id]))
	for to, w := range g.adjacency[id] {
		neighbors[to] = w
	}
	return neighbors
}

// ForEachNeighbor calls fn for every neighbor of id in ascending id order.
// fn must not modify the graph.
func (g *Graph) ForEachNeighbor(id NodeID, fn func(to NodeID, weight float64)) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adj := g.adjacency[id]
	ids := make([]NodeID, 0, len(adj))
	for to := range adj {
		ids = append(ids, to)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, to := range ids {
		fn(to, adj[to])
	}
}

// EdgeGeometry polyline of the directed edge from -> to. false if the edge does not exist.
func (g *Graph) EdgeGeometry(from, to NodeID) ([]Coordinate, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	geom, ok := g.geometry[edgeKey{from, to}]
	if !ok {
		return nil, false
	}
	points := make([]Coordinate, len(geom.points))
	copy(points, geom.points)
	return points, true
}

// IsStraightLine true if the edge exists and was added without waypoints.
func (g *Graph) IsStraightLine(from, to NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	geom, ok := g.geometry[edgeKey{from, to}]
	return ok && geom.straightLine
}

func (g *Graph) EdgeWeight(from, to NodeID) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	w, ok := g.adjacency[from][to]
	return w, ok
}

func (g *Graph) GetNode(id NodeID) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.GetNode(id)
	return ok
}

func (g *Graph) Degree(id NodeID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[id])
}

func (g *Graph) NumNodes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// NumEdges number of undirected edges.
func (g *Graph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	count := 0
	for _, adj := range g.adjacency {
		count += len(adj)
	}
	return count / 2
}

// Nodes all nodes sorted by id.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}
