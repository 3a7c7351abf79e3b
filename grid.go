package astar

import (
	"fmt"
	"math"

	"github.com/pdrpinto/gridastar/internal"
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Grid is the caller-owned occupancy map consulted during a search.
type Grid interface {
	Width() int
	Height() int
	Walkable(p Point) bool
}

// directions lists the 8 neighbor offsets in expansion order.
var directions = [8]Point{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
	{1, 1},
	{-1, 1},
	{-1, -1},
	{1, -1},
}

// Distance returns the Euclidean distance between two cells.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PathCost sums the Euclidean step costs along path.
func PathCost(path []Point) float64 {
	return internal.Cost(path, Distance)
}

// InBounds reports whether p lies inside the grid, checking each axis
// against its own extent.
func InBounds(grid Grid, p Point) bool {
	return p.X >= 0 && p.X < grid.Width() && p.Y >= 0 && p.Y < grid.Height()
}

// BoolGrid is a column-major occupancy grid: grid[x][y] is true when the
// cell is walkable.
type BoolGrid [][]bool

// NewBoolGrid validates cells and wraps them as a Grid.
// Every column must have the same, non-zero length.
func NewBoolGrid(cells [][]bool) (BoolGrid, error) {
	g := BoolGrid(cells)
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

// check rejects empty and ragged grids.
func (g BoolGrid) check() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return fmt.Errorf("empty grid: %w", ErrInvalidGrid)
	}
	height := len(g[0])
	for x, column := range g {
		if len(column) != height {
			return fmt.Errorf("column %d has %d cells, want %d: %w", x, len(column), height, ErrInvalidGrid)
		}
	}
	return nil
}

// NewOpenGrid returns a width × height grid with every cell walkable.
func NewOpenGrid(width, height int) BoolGrid {
	g := make(BoolGrid, width)
	for x := range g {
		g[x] = make([]bool, height)
		for y := range g[x] {
			g[x][y] = true
		}
	}
	return g
}

// ParseGrid builds a grid from text rows. Row i is y = i, column j is x = j.
// '#' marks a blocked cell, '.' a walkable one.
func ParseGrid(rows []string) (BoolGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", ErrInvalidGrid)
	}
	width := len(rows[0])
	g := make(BoolGrid, width)
	for x := range g {
		g[x] = make([]bool, len(rows))
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrInvalidGrid)
		}
		for x, c := range row {
			switch c {
			case '.':
				g[x][y] = true
			case '#':
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q: %w", y, x, c, ErrInvalidGrid)
			}
		}
	}
	return g, nil
}

func (g BoolGrid) Width() int { return len(g) }

func (g BoolGrid) Height() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Walkable returns false for cells outside the grid.
func (g BoolGrid) Walkable(p Point) bool {
	if !InBounds(g, p) || p.Y >= len(g[p.X]) {
		return false
	}
	return g[p.X][p.Y]
}

// Set marks a cell walkable or blocked. Out-of-range cells are ignored.
func (g BoolGrid) Set(p Point, walkable bool) {
	if InBounds(g, p) && p.Y < len(g[p.X]) {
		g[p.X][p.Y] = walkable
	}
}
