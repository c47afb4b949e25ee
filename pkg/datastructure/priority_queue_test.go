package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {

	return min + rand.Intn(max-min)
}

func TestPriorityQueue(t *testing.T) {
	pq := NewMinHeap()
	if pq == nil {
		t.Errorf("PriorityQueue is nil")
	}

	for i := 0; i < 10000; i++ {
		item := NewPriorityQueueNode(float64(generateRandomInteger(0, 10000)), NodeID(i))
		pq.Insert(item)
	}

	prevItem, ok := pq.ExtractMin()
	if !ok {
		t.Errorf("Error extract min")
	}

	for i := 1; i < 10000; i++ {
		item, ok := pq.ExtractMin()
		if !ok {
			t.Errorf("Error extract min")
		}

		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		if prevItem.Rank == item.Rank && prevItem.Item > item.Item {
			t.Errorf("equal ranks must pop lower node id first")
		}
		prevItem = item
	}

	_, ok = pq.ExtractMin()
	assert.False(t, ok)
}

func TestPriorityQueueTieBreak(t *testing.T) {
	pq := NewMinHeap()
	pq.Insert(NewPriorityQueueNode(5, 9))
	pq.Insert(NewPriorityQueueNode(5, 2))
	pq.Insert(NewPriorityQueueNode(1, 7))
	pq.Insert(NewPriorityQueueNode(5, 4))

	want := []NodeID{7, 2, 4, 9}
	for _, id := range want {
		item, ok := pq.ExtractMin()
		assert.True(t, ok)
		assert.Equal(t, id, item.Item)
	}
	assert.Equal(t, 0, pq.Size())
}

func TestPriorityQueueDuplicates(t *testing.T) {
	pq := NewMinHeap()
	pq.Insert(NewPriorityQueueNode(10, 1))
	pq.Insert(NewPriorityQueueNode(3, 1))

	first, _ := pq.ExtractMin()
	second, _ := pq.ExtractMin()
	assert.Equal(t, 3.0, first.Rank)
	assert.Equal(t, 10.0, second.Rank)
	assert.Equal(t, first.Item, second.Item)
}
