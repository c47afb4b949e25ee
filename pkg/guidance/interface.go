package guidance

import "github.com/lintang-b-s/campusnav/pkg/datastructure"

type Graph interface {
	GetNode(id datastructure.NodeID) (datastructure.Node, bool)
	EdgeGeometry(from, to datastructure.NodeID) ([]datastructure.Coordinate, bool)
	EdgeWeight(from, to datastructure.NodeID) (float64, bool)
	Degree(id datastructure.NodeID) int
}
