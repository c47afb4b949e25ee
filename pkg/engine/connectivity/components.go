package connectivity

import (
	"log"
	"math"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

type Graph interface {
	Nodes() []datastructure.Node
	ForEachNeighbor(id datastructure.NodeID, fn func(to datastructure.NodeID, weight float64))
}

/*
Components connected components of the undirected campus graph. every edge is stored in both
directions, so the forward dfs pass of kosaraju already yields the strongly connected components
and the reversed pass is not needed.

components are numbered in order of their smallest node id.
*/
type Components struct {
	componentOf map[datastructure.NodeID]int
	roots       []datastructure.NodeID // smallest node id of every component
	sizes       []int
}

func ConnectedComponents(g Graph) *Components {
	nodes := g.Nodes()
	c := &Components{
		componentOf: make(map[datastructure.NodeID]int, len(nodes)),
		roots:       make([]datastructure.NodeID, 0),
		sizes:       make([]int, 0),
	}

	visited := make(map[datastructure.NodeID]bool, len(nodes))
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		component := make([]datastructure.NodeID, 0)
		dfs(g, n.ID, &component, visited)

		root := datastructure.NodeID(math.MaxInt64)
		for _, v := range component {
			if v < root {
				root = v
			}
		}

		idx := len(c.sizes)
		for _, v := range component {
			c.componentOf[v] = idx
		}
		c.roots = append(c.roots, root)
		c.sizes = append(c.sizes, len(component))
	}

	log.Printf("Connected Components Count: %d\n", len(c.sizes))
	return c
}

// dfs appends every node reachable from start to output.
func dfs(g Graph, start datastructure.NodeID, output *[]datastructure.NodeID, visited map[datastructure.NodeID]bool) {
	stack := []datastructure.NodeID{start}
	visited[start] = true
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		*output = append(*output, v)

		g.ForEachNeighbor(v, func(to datastructure.NodeID, _ float64) {
			if !visited[to] {
				visited[to] = true
				stack = append(stack, to)
			}
		})
	}
}

func (c *Components) Count() int {
	return len(c.sizes)
}

// Of component index of id. false for nodes not in the graph.
func (c *Components) Of(id datastructure.NodeID) (int, bool) {
	idx, ok := c.componentOf[id]
	return idx, ok
}

func (c *Components) Size(idx int) int {
	if idx < 0 || idx >= len(c.sizes) {
		return 0
	}
	return c.sizes[idx]
}

// Root smallest node id in component idx.
func (c *Components) Root(idx int) datastructure.NodeID {
	return c.roots[idx]
}

// Connected true if a path between a and b exists.
func (c *Components) Connected(a, b datastructure.NodeID) bool {
	ca, okA := c.componentOf[a]
	cb, okB := c.componentOf[b]
	return okA && okB && ca == cb
}

// Largest index of the component with most nodes, -1 for an empty graph. ties go to the lower index.
func (c *Components) Largest() int {
	largest := -1
	for i, size := range c.sizes {
		if largest == -1 || size > c.sizes[largest] {
			largest = i
		}
	}
	return largest
}
