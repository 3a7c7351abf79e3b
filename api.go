package astar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/pdrpinto/gridastar/internal"
)

var (
	// ErrOutOfBounds is returned when start or goal lies outside the grid.
	ErrOutOfBounds = errors.New("point out of grid bounds")
	// ErrInvalidGrid is returned for nil, empty or ragged grids.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrExpansionLimit is returned when WithMaxExpansions is exhausted.
	ErrExpansionLimit = errors.New("expansion limit reached")
)

// Result contains the outcome of a search.
type Result struct {
	// Path runs from goal back to start, both inclusive. Empty when no path exists.
	Path          []Point
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// StartToGoal returns a copy of Path ordered from start to goal.
func (r Result) StartToGoal() []Point {
	return internal.Reversed(r.Path)
}

// Options defines parameters for the search.
type Options struct {
	Frontier        FrontierKind
	MaxExpansions   int
	NumberOfWorkers int
	Logger          *slog.Logger
	Metrics         *Metrics
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithFrontier selects the open set implementation.
func WithFrontier(kind FrontierKind) Option {
	return func(options *Options) { options.Frontier = kind }
}

// WithMaxExpansions caps the number of node expansions. Zero means unlimited.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithWorkers specifies how many goroutines FindPaths runs searches on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger used for per-search debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithMetrics records every search into m.
func WithMetrics(m *Metrics) Option {
	return func(options *Options) { options.Metrics = m }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Frontier:        FrontierHeap,
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// FindPath returns the path from goal back to start, or an empty slice when
// the goal cannot be reached.
func FindPath(grid Grid, start, goal Point, options ...Option) ([]Point, error) {
	return FindPathContext(context.Background(), grid, start, goal, options...)
}

// FindPathContext is FindPath with cancellation checked between expansions.
func FindPathContext(ctx context.Context, grid Grid, start, goal Point, options ...Option) ([]Point, error) {
	result, err := Search(ctx, grid, start, goal, options...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// Search executes the A* search and reports path, cost and effort.
func Search(ctx context.Context, grid Grid, start, goal Point, options ...Option) (Result, error) {
	return searchWith(ctx, grid, start, goal, applyOptions(options))
}

func searchWith(ctx context.Context, grid Grid, start, goal Point, searchOptions Options) (Result, error) {
	if err := validate(grid, start, goal); err != nil {
		return Result{}, err
	}

	began := time.Now()
	s := newSearch(grid, start, goal, searchOptions.Frontier)
	for !s.done() {
		if err := ctx.Err(); err != nil {
			logAborted(searchOptions, start, goal, resultCanceled, s.expanded, time.Since(began), err)
			return Result{ExpandedNodes: s.expanded}, err
		}
		if searchOptions.MaxExpansions > 0 && s.expanded >= searchOptions.MaxExpansions && s.open.len() > 0 {
			err := fmt.Errorf("after %d expansions: %w", s.expanded, ErrExpansionLimit)
			logAborted(searchOptions, start, goal, resultLimit, s.expanded, time.Since(began), err)
			return Result{ExpandedNodes: s.expanded}, err
		}
		s.step()
	}

	result := Result{
		Path:          s.path(),
		TotalCost:     s.cost(),
		ExpandedNodes: s.expanded,
		Found:         s.found(),
	}
	elapsed := time.Since(began)

	label := resultNotFound
	if result.Found {
		label = resultFound
	}
	searchOptions.Metrics.observe(label, result.ExpandedNodes, elapsed)
	searchOptions.Logger.Debug("path search finished",
		"start", start,
		"goal", goal,
		"found", result.Found,
		"cost", result.TotalCost,
		"expanded", result.ExpandedNodes,
		"frontier", searchOptions.Frontier,
		"elapsed", elapsed,
	)
	return result, nil
}

// logAborted records a search that stopped before reaching a result.
func logAborted(searchOptions Options, start, goal Point, result string, expanded int, elapsed time.Duration, err error) {
	searchOptions.Metrics.observe(result, expanded, elapsed)
	searchOptions.Logger.Debug("path search aborted",
		"start", start,
		"goal", goal,
		"result", result,
		"expanded", expanded,
		"frontier", searchOptions.Frontier,
		"elapsed", elapsed,
		"err", err,
	)
}

func validate(grid Grid, start, goal Point) error {
	if grid == nil || grid.Width() <= 0 || grid.Height() <= 0 {
		return ErrInvalidGrid
	}
	if c, ok := grid.(interface{ check() error }); ok {
		if err := c.check(); err != nil {
			return err
		}
	}
	if !InBounds(grid, start) {
		return fmt.Errorf("start %v outside %dx%d grid: %w", start, grid.Width(), grid.Height(), ErrOutOfBounds)
	}
	if !InBounds(grid, goal) {
		return fmt.Errorf("goal %v outside %dx%d grid: %w", goal, grid.Width(), grid.Height(), ErrOutOfBounds)
	}
	return nil
}
