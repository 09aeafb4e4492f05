// Package bfs provides tunable options, results, and error definitions
// for breadth-first maze solving over a gridgraph.Grid.
package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mazerunner/gridgraph"
)

// DefaultStepLimit is the step ceiling used when WithStepLimit is not given.
const DefaultStepLimit = 1_000_000_000

// Sentinel errors for maze solving.
var (
	// ErrGridNil is returned if a nil grid pointer is passed.
	ErrGridNil = errors.New("bfs: grid is nil")

	// ErrEntranceNotFound is returned when no boundary cell is Open.
	ErrEntranceNotFound = errors.New("bfs: did not find an entrance into the maze")

	// ErrExitNotFound is returned when the frontier empties before any
	// boundary cell other than the entrance is reached.
	ErrExitNotFound = errors.New("bfs: no exit reachable from the entrance")

	// ErrSolveLimitExceeded is returned when the step counter reaches the ceiling.
	ErrSolveLimitExceeded = errors.New("bfs: step limit exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures Solve via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by Solve.
type Option func(*Options)

// Options holds parameters and callbacks that customize a solve.
type Options struct {
	// StepLimit is the ceiling on dequeue operations. Reaching it aborts
	// the search with ErrSolveLimitExceeded.
	StepLimit int

	// OnVisit is called once per cell, when it is first dequeued,
	// with the step number of that dequeue.
	OnVisit func(p gridgraph.Position, step int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with DefaultStepLimit and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		StepLimit: DefaultStepLimit,
		OnVisit:   func(gridgraph.Position, int) {},
	}
}

// WithStepLimit sets the step ceiling.
//
//	n > 0:  abort when the step counter reaches n
//	n <= 0: invalid option → ErrOptionViolation
func WithStepLimit(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: StepLimit must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.StepLimit = n
	}
}

// WithOnVisit registers a callback to run each time a cell is visited.
func WithOnVisit(fn func(p gridgraph.Position, step int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a successful solve:
//   - Entrance: the boundary cell the search started from.
//   - Exit: the first other boundary cell reached.
//   - Path: entrance → exit inclusive, each step 4-adjacent.
//   - Steps: number of dequeue operations performed.
type Result struct {
	Entrance gridgraph.Position   `json:"entrance"`
	Exit     gridgraph.Position   `json:"exit"`
	Path     []gridgraph.Position `json:"path"`
	Steps    int                  `json:"steps"`
}

// Metrics summarizes a solve for downstream recording.
type Metrics struct {
	Steps      int `json:"iterations"`
	PathLength int `json:"length_of_path"`
}

// Metrics derives the summary metrics from r.
func (r *Result) Metrics() Metrics {
	return Metrics{Steps: r.Steps, PathLength: len(r.Path)}
}
