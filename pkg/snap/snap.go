package snap

import (
	"log"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
)

const (
	pointTolerance = 1e-9
	// rtree ranks by planar distance in degrees, a few extra candidates are re-ranked by haversine.
	candidateSlack = 8
)

type rtreeNode struct {
	node  datastructure.Node
	bound rtreego.Rect
}

func (n *rtreeNode) Bounds() rtreego.Rect {
	return n.bound
}

type NodeSnapper struct {
	rtree *rtreego.Rtree
	size  int
}

type SnappedNode struct {
	Node     datastructure.Node
	Distance float64 // meters
}

func NewNodeSnapper(nodes []datastructure.Node) *NodeSnapper {
	rt := rtreego.NewTree(2, 25, 50)
	for i, n := range nodes {
		if (i+1)%10000 == 0 {
			log.Printf("insert node %d to r-tree...", i+1)
		}
		rt.Insert(&rtreeNode{
			node:  n,
			bound: rtreego.Point{n.Lat, n.Lon}.ToRect(pointTolerance),
		})
	}
	return &NodeSnapper{rtree: rt, size: len(nodes)}
}

// Nearest node closest to (lat, lon) and its distance in meters. false if the snapper is empty.
func (ns *NodeSnapper) Nearest(lat, lon float64) (datastructure.Node, float64, bool) {
	nearest := ns.NearestK(lat, lon, 1)
	if len(nearest) == 0 {
		return datastructure.Node{}, 0, false
	}
	return nearest[0].Node, nearest[0].Distance, true
}

// NearestK up to k nodes, nearest first. ties go to the lower node id.
func (ns *NodeSnapper) NearestK(lat, lon float64, k int) []SnappedNode {
	if k <= 0 || ns.size == 0 {
		return []SnappedNode{}
	}

	candidates := ns.rtree.NearestNeighbors(k+candidateSlack, rtreego.Point{lat, lon})
	snapped := make([]SnappedNode, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		n := c.(*rtreeNode).node
		snapped = append(snapped, SnappedNode{
			Node:     n,
			Distance: geo.CalculateHaversineDistance(lat, lon, n.Lat, n.Lon),
		})
	}

	sort.Slice(snapped, func(i, j int) bool {
		if snapped[i].Distance != snapped[j].Distance {
			return snapped[i].Distance < snapped[j].Distance
		}
		return snapped[i].Node.ID < snapped[j].Node.ID
	})
	if len(snapped) > k {
		snapped = snapped[:k]
	}
	return snapped
}

func (ns *NodeSnapper) Size() int {
	return ns.size
}
