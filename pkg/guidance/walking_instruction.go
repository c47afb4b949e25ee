package guidance

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

var ErrEmptyPath = errors.New("path is empty")

type WalkingInstruction struct {
	Instruction string
	TurnType    string
	NodeID      datastructure.NodeID
	Point       datastructure.Coordinate
	// Distance meters walked from the start up to Point
	Distance float64
}

func NewWalkingInstruction(ins Instruction) WalkingInstruction {
	return WalkingInstruction{
		Instruction: ins.GetTurnDescription(),
		TurnType:    ins.TurnType(),
		NodeID:      ins.NodeID,
		Point:       ins.Point,
		Distance:    util.RoundFloat(ins.CumulativeDistance, 2),
	}
}

type InstructionsFromPath struct {
	graph Graph
	ways  []Instruction
}

func NewInstructionsFromPath(graph Graph) *InstructionsFromPath {
	return &InstructionsFromPath{
		graph: graph,
		ways:  make([]Instruction, 0),
	}
}

/*
GetWalkingInstructions turn-by-turn directions along a node path. the turn at every interior node
comes from the bearing of the last segment of the incoming edge polyline against the first segment
of the outgoing one:

	prevNode----prevEdge----baseNode
	                           |
	                       currentEdge
	                           |
	                        adjNode

going (nearly) straight is dropped, and so is a slight bend where the walker has no other way to go.
*/
func (ifp *InstructionsFromPath) GetWalkingInstructions(path []datastructure.NodeID) ([]WalkingInstruction, error) {
	ifp.ways = ifp.ways[:0]
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	nodes := make([]datastructure.Node, 0, len(path))
	for _, id := range path {
		n, ok := ifp.graph.GetNode(id)
		if !ok {
			return nil, fmt.Errorf("path node %d: %w", id, datastructure.ErrUnknownNode)
		}
		nodes = append(nodes, n)
	}

	if len(path) == 1 {
		ifp.ways = append(ifp.ways, NewInstruction(FINISH, "", nodes[0].Name, nodes[0].ID, nodes[0].Coordinate(), 0, 0))
		return ifp.walkingInstructions(), nil
	}

	geometries := make([][]datastructure.Coordinate, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		geom, ok := ifp.graph.EdgeGeometry(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("no edge between %d and %d on path", path[i], path[i+1])
		}
		geometries = append(geometries, geom)
	}

	startBearing := 0.0
	if a, b, ok := firstSegment(geometries[0]); ok {
		startBearing = geo.BearingTo(a.Lat, a.Lon, b.Lat, b.Lon)
	}
	ifp.ways = append(ifp.ways, NewInstruction(START, nodes[1].Name, nodes[0].Name, nodes[0].ID,
		nodes[0].Coordinate(), 0, startBearing))

	cumulativeDist := 0.0
	for i := 1; i < len(path); i++ {
		w, _ := ifp.graph.EdgeWeight(path[i-1], path[i])
		cumulativeDist += w
		if i == len(path)-1 {
			break
		}

		sign, bearing := ifp.getTurnSign(path[i], geometries[i-1], geometries[i])
		if sign == IGNORE {
			continue
		}
		ifp.ways = append(ifp.ways, NewInstruction(sign, nodes[i+1].Name, nodes[i].Name, nodes[i].ID,
			nodes[i].Coordinate(), cumulativeDist, bearing))
	}

	last := nodes[len(nodes)-1]
	ifp.ways = append(ifp.ways, NewInstruction(FINISH, "", last.Name, last.ID, last.Coordinate(), cumulativeDist, 0))
	return ifp.walkingInstructions(), nil
}

func (ifp *InstructionsFromPath) getTurnSign(baseNode datastructure.NodeID, prevGeom, currentGeom []datastructure.Coordinate) (int, float64) {
	prevFrom, prevTo, okPrev := lastSegment(prevGeom)
	currFrom, currTo, okCurr := firstSegment(currentGeom)
	if !okPrev || !okCurr {
		return IGNORE, 0
	}

	prevOrientation := calcOrientation(prevFrom.Lat, prevFrom.Lon, prevTo.Lat, prevTo.Lon)
	sign := getTurnDirection(currFrom.Lat, currFrom.Lon, currTo.Lat, currTo.Lon, prevOrientation)
	bearing := geo.BearingTo(currFrom.Lat, currFrom.Lon, currTo.Lat, currTo.Lon)

	alternativeTurnsCount := ifp.graph.Degree(baseNode) - 1
	if sign == CONTINUE_ON_STREET {
		return IGNORE, bearing
	}
	if alternativeTurnsCount <= 1 && (sign == TURN_SLIGHT_LEFT || sign == TURN_SLIGHT_RIGHT) {
		return IGNORE, bearing
	}
	return sign, bearing
}

func (ifp *InstructionsFromPath) walkingInstructions() []WalkingInstruction {
	instructions := make([]WalkingInstruction, 0, len(ifp.ways))
	for _, ins := range ifp.ways {
		instructions = append(instructions, NewWalkingInstruction(ins))
	}
	return instructions
}
