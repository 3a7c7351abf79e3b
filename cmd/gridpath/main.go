package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
)

const defaultConfigPath = "config/scenario.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gridpath", flag.ContinueOnError)
	configPath := fs.String("config", "", "scenario YAML file (default $GRIDPATH_CONFIG or "+defaultConfigPath+")")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *configPath
	if path == "" {
		path = defaultConfigPath
		if p := os.Getenv("GRIDPATH_CONFIG"); p != "" {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	grid, err := cfg.BuildGrid()
	if err != nil {
		return fmt.Errorf("building grid from %s: %w", path, err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return fmt.Errorf("search options: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	opts = append(opts, astar.WithLogger(logger), astar.WithMetrics(astar.NewMetrics(reg)))

	slog.Info("running queries",
		"config", path,
		"width", grid.Width(),
		"height", grid.Height(),
		"queries", len(cfg.Queries),
		"frontier", cfg.Frontier,
	)

	queries := cfg.SearchQueries()
	results, err := astar.FindPaths(ctx, grid, queries, opts...)
	if err != nil {
		return fmt.Errorf("finding paths: %w", err)
	}
	for i, result := range results {
		printResult(queries[i], result)
	}

	if *metricsAddr == "" {
		return nil
	}
	return serveMetrics(ctx, *metricsAddr, reg)
}

func printResult(q astar.Query, result astar.Result) {
	if !result.Found {
		fmt.Printf("%v -> %v: no path (expanded %d)\n", q.Start, q.Goal, result.ExpandedNodes)
		return
	}
	cells := make([]string, 0, len(result.Path))
	for _, p := range result.StartToGoal() {
		cells = append(cells, p.String())
	}
	fmt.Printf("%v -> %v: cost %.3f, %d cells, expanded %d\n  %s\n",
		q.Start, q.Goal, result.TotalCost, len(result.Path), result.ExpandedNodes, strings.Join(cells, " "))
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
