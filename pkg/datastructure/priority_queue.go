package datastructure

type PriorityQueueNode struct {
	Rank float64
	Item NodeID
}

func NewPriorityQueueNode(rank float64, item NodeID) PriorityQueueNode {
	return PriorityQueueNode{Rank: rank, Item: item}
}

// less orders by rank, equal ranks pop the lower node id first so a search never depends on
// insertion order.
func (p PriorityQueueNode) less(other PriorityQueueNode) bool {
	if p.Rank != other.Rank {
		return p.Rank < other.Rank
	}
	return p.Item < other.Item
}

// MinHeap binary heap priorityqueue. the same node may be inserted more than once, callers drop
// stale entries when they pop them (lazy deletion) instead of decreasing keys in place.
type MinHeap struct {
	heap []PriorityQueueNode
}

func NewMinHeap() *MinHeap {
	return &MinHeap{
		heap: make([]PriorityQueueNode, 0),
	}
}

// parent get index of the parent
func (h *MinHeap) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap) rightChild(index int) int {
	return 2*index + 2
}

// heapifyUp swap with the parent while the parent is greater. O(logN) tree height.
func (h *MinHeap) heapifyUp(index int) {
	for index != 0 && h.heap[index].less(h.heap[h.parent(index)]) {
		h.heap[index], h.heap[h.parent(index)] = h.heap[h.parent(index)], h.heap[index]

		index = h.parent(index)
	}
}

// heapifyDown swap with the smaller child while it is smaller than the node. O(logN) tree height.
func (h *MinHeap) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.heap[left].less(h.heap[smallest]) {
			smallest = left
		}
		if right < len(h.heap) && h.heap[right].less(h.heap[smallest]) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.heap[index], h.heap[smallest] = h.heap[smallest], h.heap[index]
		index = smallest
	}
}

func (h *MinHeap) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap) Size() int {
	return len(h.heap)
}

func (h *MinHeap) Insert(key PriorityQueueNode) {
	h.heap = append(h.heap, key)
	h.heapifyUp(h.Size() - 1)
}

// ExtractMin pop the minimum. O(logN)
func (h *MinHeap) ExtractMin() (PriorityQueueNode, bool) {
	if h.isEmpty() {
		return PriorityQueueNode{}, false
	}
	root := h.heap[0]
	last := h.Size() - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, true
}
