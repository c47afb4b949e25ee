package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	badgerStore, err := NewBadgerStore("", true)
	require.NoError(t, err)
	pebbleStore, err := NewPebbleStore("campusnav", true)
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerStore.Close()
		pebbleStore.Close()
	})
	return map[string]Store{"badger": badgerStore, "pebble": pebbleStore}
}

func campusGraph(t *testing.T) *datastructure.Graph {
	t.Helper()
	g := datastructure.NewGraph()
	g.AddNode(1, "south gate", 102.8561, 24.8251)
	g.AddNode(2, "library", 102.8565, 24.8262)
	g.AddNode(3, "canteen", 102.8580, 24.8270)
	require.NoError(t, g.AddEdge(1, 2, 130, nil))
	require.NoError(t, g.AddEdge(2, 3, 190, []datastructure.Coordinate{
		{Lat: 24.8262, Lon: 102.8565},
		{Lat: 24.8266, Lon: 102.8571},
		{Lat: 24.8270, Lon: 102.8580},
	}))
	return g
}

func TestStoreGetPut(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get([]byte("missing"))
			assert.ErrorIs(t, err, ErrKeyNotFound)

			err = store.PutBatch(context.Background(), []Entry{
				{Key: []byte("a"), Value: []byte("1")},
				{Key: []byte("b"), Value: []byte("2")},
			})
			require.NoError(t, err)

			val, err := store.Get([]byte("b"))
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), val)
		})
	}
}

func TestSaveLoadGraph(t *testing.T) {
	g := campusGraph(t)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			db := NewKVDB(store)

			_, err := db.LoadGraph()
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, db.SaveGraph(context.Background(), g.Snapshot()))

			loaded, err := db.LoadGraph()
			require.NoError(t, err)
			assert.Equal(t, g.Nodes(), loaded.Nodes())
			assert.Equal(t, g.NumEdges(), loaded.NumEdges())

			want, _ := g.EdgeGeometry(3, 2)
			got, ok := loaded.EdgeGeometry(3, 2)
			require.True(t, ok)
			assert.Equal(t, want, got)
			assert.True(t, loaded.IsStraightLine(1, 2))
			assert.False(t, loaded.IsStraightLine(2, 3))
		})
	}
}

func TestNearbyNodes(t *testing.T) {
	g := campusGraph(t)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			db := NewKVDB(store)
			require.NoError(t, db.BuildH3IndexedNodes(context.Background(), g.Nodes()))

			nodes, err := db.GetNearbyNodes(24.8262, 102.8565)
			require.NoError(t, err)
			require.NotEmpty(t, nodes)
			assert.Equal(t, datastructure.NodeID(2), nodes[0].ID)
			assert.Equal(t, "library", nodes[0].Name)

			// a few hundred meters off campus, found through the grid disks
			nodes, err = db.GetNearbyNodes(24.8300, 102.8600)
			require.NoError(t, err)
			assert.NotEmpty(t, nodes)

			_, err = db.GetNearbyNodes(0, 0)
			assert.ErrorIs(t, err, ErrNodesNotFound)

			within, err := db.GetNodesWithinRadius(24.8251, 102.8561, 0.2)
			require.NoError(t, err)
			ids := []datastructure.NodeID{}
			for _, n := range within {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, []datastructure.NodeID{1, 2}, ids)
		})
	}
}

func TestBuildH3IndexedNodesCancelled(t *testing.T) {
	store, err := NewBadgerStore("", true)
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewKVDB(store).BuildH3IndexedNodes(ctx, campusGraph(t).Nodes())
	assert.Error(t, err)
}

func TestEncodeNodes(t *testing.T) {
	nodes := []datastructure.Node{
		datastructure.NewNode(7, "gym", 102.85, 24.82),
		datastructure.NewNode(8, "", 102.86, 24.83),
	}
	bb, err := encodeNodes(nodes)
	require.NoError(t, err)

	decoded, err := loadNodes(bb)
	require.NoError(t, err)
	assert.Equal(t, nodes, decoded)

	_, err = loadNodes([]byte("not zstd"))
	assert.Error(t, err)
}
