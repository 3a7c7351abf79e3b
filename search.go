package astar

type searchState int

const (
	stateSearching searchState = iota
	stateGoalFound
	stateFrontierExhausted
)

// search holds the per-call state machine. It is not safe for concurrent use.
type search struct {
	grid  Grid
	start Point
	goal  Point

	nodes   arena
	open    frontier
	closed  visitedSet
	goalIdx int

	state    searchState
	expanded int
}

func newSearch(grid Grid, start, goal Point, kind FrontierKind) *search {
	s := &search{
		grid:    grid,
		start:   start,
		goal:    goal,
		closed:  make(visitedSet),
		goalIdx: noParent,
	}
	s.open = newFrontier(kind, &s.nodes)

	root := s.nodes.add(node{pos: start, parent: noParent})
	if start == goal {
		s.goalIdx = root
		s.state = stateGoalFound
		return s
	}
	s.open.insert(root)
	return s
}

func (s *search) done() bool { return s.state != stateSearching }

// step expands one node and reports its position. It returns false once
// the search has finished.
func (s *search) step() (Point, bool) {
	if s.done() {
		return Point{}, false
	}
	if s.open.len() == 0 {
		s.state = stateFrontierExhausted
		return Point{}, false
	}

	current := s.open.extractMin()
	s.closed.insert(&s.nodes, current)
	s.expanded++

	for _, candidate := range s.neighbors(current) {
		if candidate.pos == s.goal {
			s.goalIdx = s.nodes.add(candidate)
			s.state = stateGoalFound
			break
		}
		s.relax(candidate)
	}
	return s.nodes.at(current).pos, true
}

// neighbors returns the walkable in-bounds cells around node i as candidate
// nodes. Diagonals do not check the flanking orthogonal cells.
func (s *search) neighbors(i int) []node {
	from := *s.nodes.at(i)
	out := make([]node, 0, len(directions))
	for _, d := range directions {
		pos := from.pos.Add(d)
		if !InBounds(s.grid, pos) || !s.grid.Walkable(pos) {
			continue
		}
		out = append(out, node{
			pos:    pos,
			g:      from.g + Distance(from.pos, pos),
			h:      Distance(pos, s.goal),
			parent: i,
		})
	}
	return out
}

// relax merges a candidate into the open and closed sets.
//
// An open entry at the same position absorbs the candidate: it takes the
// candidate's costs and parent when the candidate is cheaper, and the
// candidate is dropped either way. A closed entry is reopened only when the
// candidate is strictly cheaper; otherwise the candidate is dropped.
func (s *search) relax(candidate node) {
	inOpen := false
	if i, ok := s.open.find(candidate.pos); ok {
		existing := s.nodes.at(i)
		if existing.g > candidate.g {
			existing.g = candidate.g
			existing.h = candidate.h
			existing.parent = candidate.parent
			s.open.update(i)
		}
		inOpen = true
	}

	if i, ok := s.closed.find(candidate.pos); ok {
		if s.nodes.at(i).g > candidate.g {
			s.closed.remove(candidate.pos)
		} else {
			return
		}
	}

	if !inOpen {
		s.open.insert(s.nodes.add(candidate))
	}
}

func (s *search) found() bool { return s.state == stateGoalFound }

// path returns the cells from goal back to start, or an empty slice.
func (s *search) path() []Point {
	if !s.found() {
		return []Point{}
	}
	return s.nodes.path(s.goalIdx)
}

func (s *search) cost() float64 {
	if !s.found() {
		return 0
	}
	return s.nodes.at(s.goalIdx).g
}
