// Package astar finds shortest walkable paths on 2D occupancy grids with A*.
//
// Movement is 8-directional. Edge cost and heuristic are both the Euclidean
// distance, so orthogonal steps cost 1 and diagonal steps cost √2. Diagonal
// moves are allowed even when both flanking orthogonal cells are blocked.
//
// It exposes these entry points:
//
//   - FindPath / FindPathContext: run a search and get the path (goal to start).
//   - Search: run a search and get a Result with cost and expansion count.
//   - FindPaths: run many independent searches on a worker pool.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Each search owns its node arena, frontier and visited set, so concurrent
// calls never share state. The grid is read-only for the duration of a call.
package astar
