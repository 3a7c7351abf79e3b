package astar

// noParent marks the start node.
const noParent = -1

// node is one visit to a cell. parent is an index into the owning arena.
type node struct {
	pos    Point
	g      float64
	h      float64
	parent int
}

func (n node) f() float64 { return n.g + n.h }

// arena owns every node created by one search. Nodes refer to each other by
// index, so the whole graph is released with the slice.
type arena struct {
	nodes []node
}

func (a *arena) add(n node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

func (a *arena) at(i int) *node { return &a.nodes[i] }

// path collects positions from i back to the start node.
func (a *arena) path(i int) []Point {
	if i == noParent {
		return []Point{}
	}
	path := make([]Point, 0, 32)
	for ; i != noParent; i = a.nodes[i].parent {
		path = append(path, a.nodes[i].pos)
	}
	return path
}
