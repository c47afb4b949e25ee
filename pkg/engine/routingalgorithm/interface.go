package routingalgorithm

import "github.com/lintang-b-s/campusnav/pkg/datastructure"

// GeometryProvider read side of the graph needed to expand a node path into coordinates.
type GeometryProvider interface {
	EdgeGeometry(from, to datastructure.NodeID) ([]datastructure.Coordinate, bool)
	IsStraightLine(from, to datastructure.NodeID) bool
}

type Graph interface {
	GeometryProvider

	GetNode(id datastructure.NodeID) (datastructure.Node, bool)
	Degree(id datastructure.NodeID) int
	ForEachNeighbor(id datastructure.NodeID, fn func(to datastructure.NodeID, weight float64))
	NumNodes() int
}
