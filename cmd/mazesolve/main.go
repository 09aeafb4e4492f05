// Command mazesolve solves a single maze file and prints the annotated grid.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/mazerunner/bfs"
	"github.com/katalvlaran/mazerunner/config"
	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/gridgraph"
)

func main() {
	// Minimal logger until flags are parsed.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(context.Background(), os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run is main without the process exits.
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	opts, shouldExit, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := config.NewLogger(opts.LogLevel, opts.LogFormat, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	grid, err := readGrid(opts.Input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("Maze loaded.", "rows", grid.Rows(), "cols", grid.Cols())

	res, err := solve(ctx, grid, opts)
	if err != nil {
		return err
	}
	m := res.Metrics()
	logger.Info("Found a way out.",
		"entrance", res.Entrance.String(),
		"exit", res.Exit.String(),
		"steps", m.Steps,
		"path_length", m.PathLength,
	)

	grid.MarkPath(res.Path)
	if err := writeGrid(grid, opts.Output, stdout); err != nil {
		return err
	}

	if opts.Stats {
		enc := json.NewEncoder(stderr)
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

func solve(ctx context.Context, grid *gridgraph.Grid, opts *options) (*bfs.Result, error) {
	var solveOpts []bfs.Option
	if opts.StepLimit > 0 {
		solveOpts = append(solveOpts, bfs.WithStepLimit(opts.StepLimit))
	}
	if opts.Trace {
		logger := ctxlog.FromContext(ctx)
		solveOpts = append(solveOpts, bfs.WithOnVisit(func(p gridgraph.Position, step int) {
			logger.Debug("visit", "cell", p.String(), "step", step)
		}))
	}
	return bfs.Solve(grid, solveOpts...)
}

func readGrid(path string, stdin io.Reader) (*gridgraph.Grid, error) {
	if path == "-" {
		return gridgraph.ParseCSV(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := gridgraph.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func writeGrid(g *gridgraph.Grid, path string, stdout io.Writer) error {
	if path == "" {
		return g.Encode(stdout)
	}
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
