package astar

import (
	"bytes"
	"container/heap"
	"context"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPathOpenGridDiagonal(t *testing.T) {
	for _, kind := range frontierKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			path, err := FindPath(NewOpenGrid(5, 5), Point{0, 0}, Point{4, 4}, WithFrontier(kind))
			require.NoError(t, err)

			assert.Equal(t, []Point{{4, 4}, {3, 3}, {2, 2}, {1, 1}, {0, 0}}, path)
			assert.InDelta(t, 4*math.Sqrt2, PathCost(path), 1e-9)
		})
	}
}

func TestFindPathThroughSingleGap(t *testing.T) {
	g := NewOpenGrid(5, 5)
	for x := 0; x < 4; x++ {
		g.Set(Point{x, 2}, false)
	}

	result, err := Search(context.Background(), g, Point{0, 0}, Point{4, 4})
	require.NoError(t, err)
	require.True(t, result.Found)

	assert.Contains(t, result.Path, Point{4, 2})
	assert.Equal(t, Point{4, 4}, result.Path[0])
	assert.Equal(t, Point{0, 0}, result.Path[len(result.Path)-1])
	assertValidPath(t, g, result.Path)
	assert.InDelta(t, PathCost(result.Path), result.TotalCost, 1e-9)
}

func TestFindPathStartEnclosed(t *testing.T) {
	g, err := ParseGrid([]string{
		"#####",
		"#.#..",
		"###..",
		".....",
	})
	require.NoError(t, err)

	for _, kind := range frontierKinds() {
		result, err := Search(context.Background(), g, Point{1, 1}, Point{4, 3}, WithFrontier(kind))
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Empty(t, result.Path)
		assert.NotNil(t, result.Path)
		assert.Equal(t, 1, result.ExpandedNodes)
	}
}

func TestFindPathGoalIsolatedTerminates(t *testing.T) {
	g := NewOpenGrid(12, 9)
	goal := Point{8, 4}
	for _, d := range directions {
		g.Set(goal.Add(d), false)
	}

	result, err := Search(context.Background(), g, Point{0, 0}, goal)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Path)
	assert.Equal(t, 0.0, result.TotalCost)
	assert.LessOrEqual(t, result.ExpandedNodes, 2*g.Width()*g.Height())
}

func TestFindPathBlockedGoal(t *testing.T) {
	g := NewOpenGrid(4, 4)
	g.Set(Point{3, 3}, false)

	path, err := FindPath(g, Point{0, 0}, Point{3, 3})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindPathStartEqualsGoal(t *testing.T) {
	result, err := Search(context.Background(), NewOpenGrid(3, 3), Point{1, 1}, Point{1, 1})
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, []Point{{1, 1}}, result.Path)
	assert.Equal(t, 0.0, result.TotalCost)
	assert.Equal(t, 0, result.ExpandedNodes)
}

func TestFindPathStraightLine(t *testing.T) {
	g := NewOpenGrid(7, 1)

	path, err := FindPath(g, Point{0, 0}, Point{6, 0})
	require.NoError(t, err)
	assert.Len(t, path, 7)
	assert.InDelta(t, 6.0, PathCost(path), 1e-9)
}

func TestFindPathNonSquareGrid(t *testing.T) {
	g := NewOpenGrid(2, 8)

	path, err := FindPath(g, Point{0, 0}, Point{1, 7})
	require.NoError(t, err)
	assertValidPath(t, g, path)
	assert.Equal(t, Point{1, 7}, path[0])
	assert.InDelta(t, 6+math.Sqrt2, PathCost(path), 1e-9)
}

func TestFindPathOutOfBounds(t *testing.T) {
	g := NewOpenGrid(6, 2)

	_, err := FindPath(g, Point{-1, 0}, Point{1, 1})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = FindPath(g, Point{0, 0}, Point{1, 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = FindPath(g, Point{0, 0}, Point{6, 1})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFindPathInvalidGrid(t *testing.T) {
	_, err := FindPath(nil, Point{}, Point{})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = FindPath(BoolGrid{}, Point{}, Point{})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestFindPathRaggedGrid(t *testing.T) {
	ragged := BoolGrid{{true, true, true}, {true}, {true, true, true}}

	assert.NotPanics(t, func() {
		_, err := FindPath(ragged, Point{0, 0}, Point{2, 2})
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	_, err := NewStepper(ragged, Point{0, 0}, Point{2, 2})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestSearchLogsAbortedRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Search(context.Background(), NewOpenGrid(20, 20), Point{0, 0}, Point{19, 19},
		WithLogger(logger), WithMaxExpansions(1))
	require.ErrorIs(t, err, ErrExpansionLimit)
	assert.Contains(t, buf.String(), "path search aborted")
	assert.Contains(t, buf.String(), "result=limit")
	assert.Contains(t, buf.String(), "expansion limit reached")

	buf.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Search(ctx, NewOpenGrid(5, 5), Point{0, 0}, Point{4, 4}, WithLogger(logger))
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), "result=canceled")
}

func TestFindPathIdempotent(t *testing.T) {
	g := randomGrid(rand.New(rand.NewSource(7)), 20, 15, 0.3)
	g.Set(Point{0, 0}, true)
	g.Set(Point{19, 14}, true)

	first, err := FindPath(g, Point{0, 0}, Point{19, 14})
	require.NoError(t, err)
	second, err := FindPath(g, Point{0, 0}, Point{19, 14})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindPathRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 60; trial++ {
		width, height := 4+rng.Intn(20), 4+rng.Intn(20)
		g := randomGrid(rng, width, height, 0.35)
		start := Point{rng.Intn(width), rng.Intn(height)}
		goal := Point{rng.Intn(width), rng.Intn(height)}
		g.Set(start, true)
		g.Set(goal, true)

		heapResult, err := Search(context.Background(), g, start, goal, WithFrontier(FrontierHeap))
		require.NoError(t, err)
		linearResult, err := Search(context.Background(), g, start, goal, WithFrontier(FrontierLinear))
		require.NoError(t, err)
		assert.Equal(t, linearResult, heapResult, "trial %d", trial)

		best, reachable := dijkstra(g, start, goal)
		require.Equal(t, reachable, heapResult.Found, "trial %d", trial)
		if !reachable {
			assert.Empty(t, heapResult.Path)
			continue
		}
		assertValidPath(t, g, heapResult.Path)
		assert.Equal(t, goal, heapResult.Path[0])
		assert.Equal(t, start, heapResult.Path[len(heapResult.Path)-1])
		assert.InDelta(t, best, heapResult.TotalCost, 1e-6, "trial %d", trial)
		assert.InDelta(t, heapResult.TotalCost, PathCost(heapResult.Path), 1e-9)
	}
}

func TestResultStartToGoal(t *testing.T) {
	result, err := Search(context.Background(), NewOpenGrid(3, 1), Point{0, 0}, Point{2, 0})
	require.NoError(t, err)

	assert.Equal(t, []Point{{0, 0}, {1, 0}, {2, 0}}, result.StartToGoal())
	assert.Equal(t, []Point{{2, 0}, {1, 0}, {0, 0}}, result.Path)
}

func TestSearchExpansionLimit(t *testing.T) {
	g := NewOpenGrid(30, 30)
	g.Set(Point{29, 29}, false)

	result, err := Search(context.Background(), g, Point{0, 0}, Point{29, 29}, WithMaxExpansions(10))
	assert.ErrorIs(t, err, ErrExpansionLimit)
	assert.Equal(t, 10, result.ExpandedNodes)
	assert.False(t, result.Found)

	// the budget does not fire when the search finishes within it
	path, err := FindPath(NewOpenGrid(5, 5), Point{0, 0}, Point{4, 4}, WithMaxExpansions(10))
	require.NoError(t, err)
	assert.Len(t, path, 5)
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindPathContext(ctx, NewOpenGrid(5, 5), Point{0, 0}, Point{4, 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchLogsDebugRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := FindPath(NewOpenGrid(3, 3), Point{0, 0}, Point{2, 2}, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "path search finished")
	assert.Contains(t, buf.String(), "found=true")
}

func assertValidPath(t *testing.T, g Grid, path []Point) {
	t.Helper()
	require.NotEmpty(t, path)
	for i, p := range path {
		assert.True(t, g.Walkable(p), "cell %v not walkable", p)
		if i == 0 {
			continue
		}
		dx, dy := abs(p.X-path[i-1].X), abs(p.Y-path[i-1].Y)
		assert.True(t, dx <= 1 && dy <= 1 && dx+dy > 0, "%v -> %v is not a single step", path[i-1], p)
	}
}

func randomGrid(rng *rand.Rand, width, height int, density float64) BoolGrid {
	g := NewOpenGrid(width, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if rng.Float64() < density {
				g.Set(Point{x, y}, false)
			}
		}
	}
	return g
}

// dijkstra is a reference shortest-path cost over the same move set.
func dijkstra(g Grid, start, goal Point) (float64, bool) {
	dist := map[Point]float64{start: 0}
	done := map[Point]bool{}
	pq := &distQueue{{p: start}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distItem)
		if done[cur.p] {
			continue
		}
		done[cur.p] = true
		if cur.p == goal {
			return cur.d, true
		}
		for _, d := range directions {
			next := cur.p.Add(d)
			if !g.Walkable(next) {
				continue
			}
			nd := cur.d + Distance(cur.p, next)
			if old, ok := dist[next]; !ok || nd < old {
				dist[next] = nd
				heap.Push(pq, distItem{p: next, d: nd})
			}
		}
	}
	return 0, false
}

type distItem struct {
	p Point
	d float64
}

type distQueue []distItem

func (q distQueue) Len() int           { return len(q) }
func (q distQueue) Less(i, j int) bool { return q[i].d < q[j].d }
func (q distQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)        { *q = append(*q, x.(distItem)) }
func (q *distQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
