package guidance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

func zigzagGraph(t *testing.T) *datastructure.Graph {
	t.Helper()
	//         e
	//         |
	//         d
	//         |
	// b ----- c
	// |
	// a
	g := datastructure.NewGraph()
	g.AddNode(1, "a", 0, 0)
	g.AddNode(2, "b", 0, 0.001)
	g.AddNode(3, "c", 0.001, 0.001)
	g.AddNode(4, "d", 0.001, 0.002)
	g.AddNode(5, "e", 0.001, 0.003)
	require.NoError(t, g.AddEdge(1, 2, 100, nil))
	require.NoError(t, g.AddEdge(2, 3, 100, nil))
	require.NoError(t, g.AddEdge(3, 4, 100, nil))
	require.NoError(t, g.AddEdge(4, 5, 100, nil))
	return g
}

func TestGetWalkingInstructions(t *testing.T) {
	g := zigzagGraph(t)

	ins, err := NewInstructionsFromPath(g).GetWalkingInstructions([]datastructure.NodeID{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Len(t, ins, 4)

	assert.Equal(t, "Head North toward b", ins[0].Instruction)
	assert.Equal(t, "START", ins[0].TurnType)
	assert.Equal(t, 0.0, ins[0].Distance)

	assert.Equal(t, "Turn right at b toward c", ins[1].Instruction)
	assert.Equal(t, "TURN_RIGHT", ins[1].TurnType)
	assert.Equal(t, datastructure.NodeID(2), ins[1].NodeID)
	assert.Equal(t, 100.0, ins[1].Distance)

	assert.Equal(t, "Turn left at c toward d", ins[2].Instruction)
	assert.Equal(t, 200.0, ins[2].Distance)

	// d is passed straight through
	assert.Equal(t, "Arrive at e", ins[3].Instruction)
	assert.Equal(t, "FINISH", ins[3].TurnType)
	assert.Equal(t, 400.0, ins[3].Distance)
}

func TestGetWalkingInstructionsReverse(t *testing.T) {
	g := zigzagGraph(t)

	ins, err := NewInstructionsFromPath(g).GetWalkingInstructions([]datastructure.NodeID{5, 4, 3, 2, 1})
	require.NoError(t, err)
	require.Len(t, ins, 4)
	assert.Equal(t, "Head South toward d", ins[0].Instruction)
	assert.Equal(t, "Turn right at c toward b", ins[1].Instruction)
	assert.Equal(t, "Turn left at b toward a", ins[2].Instruction)
}

func TestGetWalkingInstructionsFollowsGeometry(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(1, "gate", 0, 0)
	g.AddNode(2, "hall", 0.001, 0.001)
	g.AddNode(3, "pond", 0.001, 0.002)
	// the road leaves gate heading north and reaches hall heading east
	require.NoError(t, g.AddEdge(1, 2, 250, []datastructure.Coordinate{
		datastructure.NewCoordinate(0, 0),
		datastructure.NewCoordinate(0.001, 0),
		datastructure.NewCoordinate(0.001, 0.001),
	}))
	require.NoError(t, g.AddEdge(2, 3, 100, nil))

	ins, err := NewInstructionsFromPath(g).GetWalkingInstructions([]datastructure.NodeID{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, ins, 3)
	assert.Equal(t, "Head North toward hall", ins[0].Instruction)
	assert.Equal(t, "Turn left at hall toward pond", ins[1].Instruction)
}

func TestGetWalkingInstructionsSlightTurns(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(10, "p", 0, 0)
	g.AddNode(11, "q", 0, 0.001)
	g.AddNode(12, "r", 0.0003, 0.002)
	require.NoError(t, g.AddEdge(10, 11, 100, nil))
	require.NoError(t, g.AddEdge(11, 12, 100, nil))

	path := []datastructure.NodeID{10, 11, 12}
	ins, err := NewInstructionsFromPath(g).GetWalkingInstructions(path)
	require.NoError(t, err)
	assert.Len(t, ins, 2, "slight bend without a side way is not an instruction")

	g.AddNode(13, "s", -0.001, 0.001)
	require.NoError(t, g.AddEdge(11, 13, 100, nil))

	ins, err = NewInstructionsFromPath(g).GetWalkingInstructions(path)
	require.NoError(t, err)
	require.Len(t, ins, 3)
	assert.Equal(t, "TURN_SLIGHT_RIGHT", ins[1].TurnType)
	assert.Equal(t, "Turn slight right at q toward r", ins[1].Instruction)
}

func TestGetWalkingInstructionsDegenerate(t *testing.T) {
	g := zigzagGraph(t)
	ifp := NewInstructionsFromPath(g)

	_, err := ifp.GetWalkingInstructions(nil)
	assert.ErrorIs(t, err, ErrEmptyPath)

	ins, err := ifp.GetWalkingInstructions([]datastructure.NodeID{3})
	require.NoError(t, err)
	require.Len(t, ins, 1)
	assert.Equal(t, "Arrive at c", ins[0].Instruction)

	_, err = ifp.GetWalkingInstructions([]datastructure.NodeID{1, 42})
	assert.ErrorIs(t, err, datastructure.ErrUnknownNode)

	_, err = ifp.GetWalkingInstructions([]datastructure.NodeID{1, 3})
	assert.Error(t, err)
}

func TestGetTurnDirection(t *testing.T) {
	north := 0.0
	cases := []struct {
		name     string
		lat, lon float64
		expected int
	}{
		{"straight", 1, 0, CONTINUE_ON_STREET},
		{"slight right", 1, 0.5, TURN_SLIGHT_RIGHT},
		{"slight left", 1, -0.5, TURN_SLIGHT_LEFT},
		{"right", 0, 1, TURN_RIGHT},
		{"left", 0, -1, TURN_LEFT},
		{"sharp right", -1, 0.5, TURN_SHARP_RIGHT},
		{"sharp left", -1, -0.5, TURN_SHARP_LEFT},
		{"turn around", -1, 0, U_TURN_UNKNOWN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, getTurnDirection(0, 0, tc.lat, tc.lon, north))
		})
	}
}

func TestAlignOrientation(t *testing.T) {
	// heading 170° then -170° is a 20° right turn, not a 340° left one
	base := toRadians(170)
	aligned := alignOrientation(base, toRadians(-170))
	assert.InDelta(t, toRadians(20), aligned-base, 1e-9)

	base = toRadians(-170)
	aligned = alignOrientation(base, toRadians(170))
	assert.InDelta(t, -toRadians(20), aligned-base, 1e-9)
	assert.False(t, math.IsNaN(aligned))
}
