package astar

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair for FindPaths.
type Query struct {
	Start Point
	Goal  Point
}

// FindPaths runs one independent search per query on a pool of
// WithWorkers goroutines and returns results in query order.
// The first failing query cancels the rest.
func FindPaths(ctx context.Context, grid Grid, queries []Query, options ...Option) ([]Result, error) {
	searchOptions := applyOptions(options)
	results := make([]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchOptions.NumberOfWorkers)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			result, err := searchWith(gctx, grid, query.Start, query.Goal, searchOptions)
			if err != nil {
				return fmt.Errorf("query %d %v -> %v: %w", i, query.Start, query.Goal, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
