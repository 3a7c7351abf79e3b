package astar

import "container/heap"

type priorityQueueItem struct {
	node         int
	fCost        float64
	seq          int
	indexInQueue int
}

// priorityQueue orders by fCost, then by insertion sequence.
type priorityQueue []*priorityQueueItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].fCost != queue[j].fCost {
		return queue[i].fCost < queue[j].fCost
	}
	return queue[i].seq < queue[j].seq
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*priorityQueueItem)
	item.indexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.indexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// heapFrontier is a binary heap plus a position index.
type heapFrontier struct {
	arena   *arena
	queue   priorityQueue
	byPos   map[Point]*priorityQueueItem
	nextSeq int
}

func newHeapFrontier(a *arena) *heapFrontier {
	return &heapFrontier{
		arena: a,
		byPos: make(map[Point]*priorityQueueItem),
	}
}

func (h *heapFrontier) insert(i int) {
	item := &priorityQueueItem{node: i, fCost: h.arena.at(i).f(), seq: h.nextSeq}
	h.nextSeq++
	heap.Push(&h.queue, item)
	h.byPos[h.arena.at(i).pos] = item
}

func (h *heapFrontier) extractMin() int {
	item := heap.Pop(&h.queue).(*priorityQueueItem)
	delete(h.byPos, h.arena.at(item.node).pos)
	return item.node
}

func (h *heapFrontier) find(p Point) (int, bool) {
	item, ok := h.byPos[p]
	if !ok {
		return 0, false
	}
	return item.node, true
}

func (h *heapFrontier) update(i int) {
	item, ok := h.byPos[h.arena.at(i).pos]
	if !ok {
		return
	}
	item.fCost = h.arena.at(i).f()
	heap.Fix(&h.queue, item.indexInQueue)
}

func (h *heapFrontier) len() int { return h.queue.Len() }

func (h *heapFrontier) positions() []Point {
	out := make([]Point, 0, len(h.queue))
	for _, item := range h.queue {
		out = append(out, h.arena.at(item.node).pos)
	}
	return out
}
