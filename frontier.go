package astar

import "fmt"

// FrontierKind selects the open set implementation.
type FrontierKind int

const (
	// FrontierHeap keeps the open set in a binary heap with a position index.
	FrontierHeap FrontierKind = iota
	// FrontierLinear scans a slice for every lookup. Same ordering as
	// FrontierHeap, kept as the reference behavior.
	FrontierLinear
)

func (k FrontierKind) String() string {
	switch k {
	case FrontierHeap:
		return "heap"
	case FrontierLinear:
		return "linear"
	default:
		return fmt.Sprintf("FrontierKind(%d)", int(k))
	}
}

// ParseFrontierKind maps "heap" or "linear" to a FrontierKind.
func ParseFrontierKind(s string) (FrontierKind, error) {
	switch s {
	case "", "heap":
		return FrontierHeap, nil
	case "linear":
		return FrontierLinear, nil
	default:
		return 0, fmt.Errorf("unknown frontier %q", s)
	}
}

// frontier is the open set. It stores arena indices and never holds two
// entries for the same position.
//
// extractMin returns the entry with the smallest f; among equal f the one
// inserted first wins. update must be called after a node's costs were
// lowered in place.
type frontier interface {
	insert(i int)
	extractMin() int
	find(p Point) (int, bool)
	update(i int)
	len() int
	positions() []Point
}

func newFrontier(kind FrontierKind, a *arena) frontier {
	if kind == FrontierLinear {
		return &linearFrontier{arena: a}
	}
	return newHeapFrontier(a)
}

// linearFrontier keeps entries in insertion order.
type linearFrontier struct {
	arena *arena
	items []int
}

func (l *linearFrontier) insert(i int) { l.items = append(l.items, i) }

func (l *linearFrontier) extractMin() int {
	best := 0
	for k := 1; k < len(l.items); k++ {
		if l.arena.at(l.items[k]).f() < l.arena.at(l.items[best]).f() {
			best = k
		}
	}
	i := l.items[best]
	l.items = append(l.items[:best], l.items[best+1:]...)
	return i
}

func (l *linearFrontier) find(p Point) (int, bool) {
	for _, i := range l.items {
		if l.arena.at(i).pos == p {
			return i, true
		}
	}
	return 0, false
}

func (l *linearFrontier) update(int) {}

func (l *linearFrontier) len() int { return len(l.items) }

func (l *linearFrontier) positions() []Point {
	out := make([]Point, 0, len(l.items))
	for _, i := range l.items {
		out = append(out, l.arena.at(i).pos)
	}
	return out
}

// visitedSet is the closed set, keyed by position.
type visitedSet map[Point]int

func (v visitedSet) insert(a *arena, i int) { v[a.at(i).pos] = i }

func (v visitedSet) find(p Point) (int, bool) {
	i, ok := v[p]
	return i, ok
}

func (v visitedSet) remove(p Point) { delete(v, p) }
