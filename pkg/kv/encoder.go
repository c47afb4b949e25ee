package kv

import (
	"fmt"

	"github.com/kelindar/binary"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

// kvNode on-disk shape of a node inside an h3 bucket.
type kvNode struct {
	ID   int64
	Name string
	Lat  float64
	Lon  float64
}

func toKVNodes(nodes []datastructure.Node) []kvNode {
	kvNodes := make([]kvNode, 0, len(nodes))
	for _, n := range nodes {
		kvNodes = append(kvNodes, kvNode{ID: int64(n.ID), Name: n.Name, Lat: n.Lat, Lon: n.Lon})
	}
	return kvNodes
}

func (n kvNode) toNode() datastructure.Node {
	return datastructure.NewNode(datastructure.NodeID(n.ID), n.Name, n.Lon, n.Lat)
}

func encodeNodes(nodes []datastructure.Node) ([]byte, error) {
	bb, err := binary.Marshal(toKVNodes(nodes))
	if err != nil {
		return nil, fmt.Errorf("marshal nodes: %w", err)
	}
	return compress(bb)
}

func loadNodes(bbCompressed []byte) ([]datastructure.Node, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, fmt.Errorf("decompress nodes: %w", err)
	}

	var kvNodes []kvNode
	if err := binary.Unmarshal(bb, &kvNodes); err != nil {
		return nil, fmt.Errorf("unmarshal nodes: %w", err)
	}

	nodes := make([]datastructure.Node, 0, len(kvNodes))
	for _, n := range kvNodes {
		nodes = append(nodes, n.toNode())
	}
	return nodes, nil
}

func encodeSnapshot(snap datastructure.GraphSnapshot) ([]byte, error) {
	bb, err := binary.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal graph snapshot: %w", err)
	}
	return compress(bb)
}

func loadSnapshot(bbCompressed []byte) (datastructure.GraphSnapshot, error) {
	var snap datastructure.GraphSnapshot
	bb, err := decompress(bbCompressed)
	if err != nil {
		return snap, fmt.Errorf("decompress graph snapshot: %w", err)
	}
	if err := binary.Unmarshal(bb, &snap); err != nil {
		return snap, fmt.Errorf("unmarshal graph snapshot: %w", err)
	}
	return snap, nil
}
