package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

func TestConnectedComponents(t *testing.T) {
	g := datastructure.NewGraph()
	for i := 0; i < 7; i++ {
		g.AddNode(datastructure.NodeID(i), "", float64(i)*0.001, 0)
	}
	// {0,1,2,4} {3,5} {6}
	require.NoError(t, g.AddEdge(0, 1, 1, nil))
	require.NoError(t, g.AddEdge(1, 2, 1, nil))
	require.NoError(t, g.AddEdge(1, 4, 1, nil))
	require.NoError(t, g.AddEdge(4, 0, 1, nil))
	require.NoError(t, g.AddEdge(3, 5, 1, nil))

	c := ConnectedComponents(g)
	require.Equal(t, 3, c.Count())

	assert.Equal(t, 4, c.Size(0))
	assert.Equal(t, 2, c.Size(1))
	assert.Equal(t, 1, c.Size(2))
	assert.Equal(t, 0, c.Size(3))

	assert.Equal(t, datastructure.NodeID(0), c.Root(0))
	assert.Equal(t, datastructure.NodeID(3), c.Root(1))
	assert.Equal(t, datastructure.NodeID(6), c.Root(2))

	idx, ok := c.Of(4)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	_, ok = c.Of(42)
	assert.False(t, ok)

	assert.True(t, c.Connected(2, 4))
	assert.False(t, c.Connected(2, 5))
	assert.False(t, c.Connected(6, 42))
	assert.Equal(t, 0, c.Largest())
}

func TestConnectedComponentsEmpty(t *testing.T) {
	c := ConnectedComponents(datastructure.NewGraph())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, -1, c.Largest())
}

func TestConnectedComponentsChain(t *testing.T) {
	g := datastructure.NewGraph()
	const n = 5000
	for i := 0; i < n; i++ {
		g.AddNode(datastructure.NodeID(i), "", 0, float64(i)*0.0001)
		if i > 0 {
			require.NoError(t, g.AddEdge(datastructure.NodeID(i-1), datastructure.NodeID(i), 11, nil))
		}
	}

	c := ConnectedComponents(g)
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, n, c.Size(0))
	assert.True(t, c.Connected(0, n-1))
}
