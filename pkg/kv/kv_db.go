package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"

	"github.com/uber/h3-go/v4"

	"github.com/lintang-b-s/campusnav/pkg/concurrent"
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
)

var (
	ErrNodesNotFound = errors.New("nodes not found")
)

const (
	h3Resolution = 9
	maxGridLevel = 10
	batchSize    = 1000

	graphSnapshotKey = "graph:snapshot"
	nodeBucketPrefix = "h3:"
)

type KVDB struct {
	store Store
}

func NewKVDB(store Store) *KVDB {
	return &KVDB{store}
}

// SaveGraph stores the whole graph snapshot under one key.
func (k *KVDB) SaveGraph(ctx context.Context, snap datastructure.GraphSnapshot) error {
	log.Printf("saving graph snapshot (%d nodes, %d edges) to key-value db...", len(snap.Nodes), len(snap.Edges))
	val, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := k.store.PutBatch(ctx, []Entry{{Key: []byte(graphSnapshotKey), Value: val}}); err != nil {
		return fmt.Errorf("save graph snapshot: %w", err)
	}
	log.Printf("saving graph snapshot done, %d bytes", len(val))
	return nil
}

func (k *KVDB) LoadGraph() (*datastructure.Graph, error) {
	val, err := k.store.Get([]byte(graphSnapshotKey))
	if err != nil {
		return nil, fmt.Errorf("load graph snapshot: %w", err)
	}
	snap, err := loadSnapshot(val)
	if err != nil {
		return nil, err
	}
	return datastructure.NewGraphFromSnapshot(snap)
}

type encodedBucket struct {
	entry Entry
	err   error
}

// BuildH3IndexedNodes buckets nodes by their h3 cell and saves every bucket under its cell id.
func (k *KVDB) BuildH3IndexedNodes(ctx context.Context, nodes []datastructure.Node) error {
	log.Printf("creating & saving h3 indexed nodes to key-value db...")
	buckets := make(map[string][]datastructure.Node)
	for _, n := range nodes {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		cell := h3.LatLngToCell(h3.NewLatLng(n.Lat, n.Lon), h3Resolution)
		buckets[cell.String()] = append(buckets[cell.String()], n)
	}

	workers := concurrent.NewWorkerPool[concurrent.NodeBucket, encodedBucket](runtime.NumCPU(), len(buckets))
	for key, bucket := range buckets {
		workers.AddJob(concurrent.NodeBucket{Key: key, Nodes: bucket})
	}
	workers.Close()
	workers.Start(func(job concurrent.NodeBucket) encodedBucket {
		val, err := encodeNodes(job.Nodes)
		return encodedBucket{entry: Entry{Key: bucketKey(job.Key), Value: val}, err: err}
	})
	workers.Wait()

	batch := make([]Entry, 0, batchSize)
	var encodeErr error
	for res := range workers.CollectResults() {
		if res.err != nil {
			encodeErr = res.err
			continue
		}
		if encodeErr != nil {
			continue
		}

		batch = append(batch, res.entry)
		if len(batch) == batchSize {
			if err := k.store.PutBatch(ctx, batch); err != nil {
				return err
			}
			batch = make([]Entry, 0, batchSize)
		}
	}
	if encodeErr != nil {
		return encodeErr
	}

	if len(batch) > 0 {
		if err := k.store.PutBatch(ctx, batch); err != nil {
			return err
		}
	}

	log.Printf("saving %d h3 buckets (%d nodes) done", len(buckets), len(nodes))
	return nil
}

func bucketKey(cell string) []byte {
	return []byte(nodeBucketPrefix + cell)
}

func (k *KVDB) getCell(cell h3.Cell) ([]datastructure.Node, error) {
	val, err := k.store.Get(bucketKey(cell.String()))
	if errors.Is(err, ErrKeyNotFound) {
		return []datastructure.Node{}, nil
	}
	if err != nil {
		return nil, err
	}
	return loadNodes(val)
}

func (k *KVDB) getCells(cells []h3.Cell, skip h3.Cell) ([]datastructure.Node, error) {
	nodes := []datastructure.Node{}
	for _, cell := range cells {
		if cell == skip {
			continue
		}
		cellNodes, err := k.getCell(cell)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, cellNodes...)
	}
	return nodes, nil
}

// GetNearbyNodes nodes in the h3 cell of (lat, lon). an empty cell widens the search to grid
// disks of growing radius, up to maxGridLevel.
func (k *KVDB) GetNearbyNodes(lat, lon float64) ([]datastructure.Node, error) {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)

	nodes, err := k.getCell(cell)
	if err != nil {
		return []datastructure.Node{}, err
	}

	for lev := 1; lev <= maxGridLevel && len(nodes) == 0; lev++ {
		nodes, err = k.getCells(h3.GridDisk(cell, lev), cell)
		if err != nil {
			return []datastructure.Node{}, err
		}
	}

	if len(nodes) == 0 {
		return []datastructure.Node{}, ErrNodesNotFound
	}
	sortByDistance(nodes, lat, lon)
	return nodes, nil
}

// GetNodesWithinRadius nodes at most radiusKm away from (lat, lon), nearest first.
func (k *KVDB) GetNodesWithinRadius(lat, lon, radiusKm float64) ([]datastructure.Node, error) {
	cells := kRingIndexesArea(lat, lon, radiusKm)
	candidates, err := k.getCells(cells, h3.Cell(0))
	if err != nil {
		return []datastructure.Node{}, err
	}

	nodes := make([]datastructure.Node, 0, len(candidates))
	for _, n := range candidates {
		if geo.CalculateHaversineDistance(lat, lon, n.Lat, n.Lon) <= radiusKm*1000 {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return []datastructure.Node{}, ErrNodesNotFound
	}
	sortByDistance(nodes, lat, lon)
	return nodes, nil
}

func sortByDistance(nodes []datastructure.Node, lat, lon float64) {
	sort.SliceStable(nodes, func(i, j int) bool {
		di := geo.CalculateHaversineDistance(lat, lon, nodes[i].Lat, nodes[i].Lon)
		dj := geo.CalculateHaversineDistance(lat, lon, nodes[j].Lat, nodes[j].Lon)
		if di != dj {
			return di < dj
		}
		return nodes[i].ID < nodes[j].ID
	})
}

// kRingIndexesArea grid disk around the origin cell whose area covers a circle of searchRadiusKm.
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, h3Resolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	// cells are hexagons, the disk only covers the circle with one extra ring
	return h3.GridDisk(origin, radius+1)
}

func (k *KVDB) Close() error {
	return k.store.Close()
}
