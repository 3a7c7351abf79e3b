package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	astar "github.com/pdrpinto/gridastar"
)

// Scenario holds one grid and the queries to run against it.
type Scenario struct {
	LogLevel      string `yaml:"log_level"`
	Frontier      string `yaml:"frontier"`       // "heap" or "linear"
	Workers       int    `yaml:"workers"`        // 0 = one per CPU
	MaxExpansions int    `yaml:"max_expansions"` // 0 = unlimited

	// Grid rows, y = row index. '.' walkable, '#' blocked.
	Grid    []string `yaml:"grid"`
	Queries []Query  `yaml:"queries"`
}

// Query is a start/goal pair.
type Query struct {
	Start Cell `yaml:"start"`
	Goal  Cell `yaml:"goal"`
}

// Cell is a grid coordinate.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Point converts to the search coordinate type.
func (c Cell) Point() astar.Point { return astar.Point{X: c.X, Y: c.Y} }

// Default returns a Scenario with sensible defaults and no grid.
func Default() Scenario {
	return Scenario{
		LogLevel: "info",
		Frontier: "heap",
	}
}

// Load loads a scenario from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Scenario, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// BuildGrid parses the scenario grid.
func (s Scenario) BuildGrid() (astar.BoolGrid, error) {
	return astar.ParseGrid(s.Grid)
}

// SearchQueries converts the configured queries.
func (s Scenario) SearchQueries() []astar.Query {
	out := make([]astar.Query, 0, len(s.Queries))
	for _, q := range s.Queries {
		out = append(out, astar.Query{Start: q.Start.Point(), Goal: q.Goal.Point()})
	}
	return out
}

// Options translates the tuning fields into search options.
func (s Scenario) Options() ([]astar.Option, error) {
	kind, err := astar.ParseFrontierKind(s.Frontier)
	if err != nil {
		return nil, err
	}
	opts := []astar.Option{
		astar.WithFrontier(kind),
		astar.WithMaxExpansions(s.MaxExpansions),
	}
	if s.Workers > 0 {
		opts = append(opts, astar.WithWorkers(s.Workers))
	}
	return opts, nil
}
