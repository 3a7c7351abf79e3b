package astar

import "fmt"

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Point // last expanded cell, or start before the first expansion
	Open      map[Point]bool
	Closed    map[Point]bool
	CameFrom  map[Point]Point
	Done      bool
	Found     bool
	Path      []Point // goal to start, set once Found
	StepIndex int
}

// Stepper runs a search one expansion per Step call, so callers can render
// progress or stop on their own deadline between steps.
type Stepper struct {
	s             *search
	maxExpansions int
	last          Point
}

// NewStepper validates the endpoints and prepares a search.
func NewStepper(grid Grid, start, goal Point, options ...Option) (*Stepper, error) {
	opts := applyOptions(options)
	if err := validate(grid, start, goal); err != nil {
		return nil, err
	}
	return &Stepper{
		s:             newSearch(grid, start, goal, opts.Frontier),
		maxExpansions: opts.MaxExpansions,
		last:          start,
	}, nil
}

// Done reports whether the search has finished.
func (st *Stepper) Done() bool { return st.s.done() }

// Step advances the search by one node expansion and returns a snapshot
func (st *Stepper) Step() (StepSnapshot, error) {
	s := st.s
	if !s.done() && st.maxExpansions > 0 && s.expanded >= st.maxExpansions && s.open.len() > 0 {
		return st.snapshot(st.last), fmt.Errorf("after %d expansions: %w", s.expanded, ErrExpansionLimit)
	}
	if current, ok := s.step(); ok {
		st.last = current
	}
	if !s.done() && s.open.len() == 0 {
		// the next Step would only discover exhaustion
		s.step()
	}
	return st.snapshot(st.last), nil
}

// Result returns the outcome so far. Path is empty until the goal is found.
func (st *Stepper) Result() Result {
	return Result{
		Path:          st.s.path(),
		TotalCost:     st.s.cost(),
		ExpandedNodes: st.s.expanded,
		Found:         st.s.found(),
	}
}

func (st *Stepper) snapshot(current Point) StepSnapshot {
	s := st.s
	snap := StepSnapshot{
		Current:   current,
		Open:      make(map[Point]bool, s.open.len()),
		Closed:    make(map[Point]bool, len(s.closed)),
		CameFrom:  make(map[Point]Point, len(s.closed)+s.open.len()),
		Done:      s.done(),
		Found:     s.found(),
		StepIndex: s.expanded,
	}
	for _, p := range s.open.positions() {
		snap.Open[p] = true
		st.link(snap.CameFrom, p)
	}
	for p := range s.closed {
		snap.Closed[p] = true
		st.link(snap.CameFrom, p)
	}
	if snap.Found {
		snap.Path = s.path()
	}
	return snap
}

func (st *Stepper) link(cameFrom map[Point]Point, p Point) {
	s := st.s
	var (
		i  int
		ok bool
	)
	if i, ok = s.open.find(p); !ok {
		if i, ok = s.closed.find(p); !ok {
			return
		}
	}
	n := s.nodes.at(i)
	if n.parent != noParent {
		cameFrom[p] = s.nodes.at(n.parent).pos
	}
}
