package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// options are the parsed command-line settings.
type options struct {
	Input     string
	Output    string
	StepLimit int
	LogLevel  string
	LogFormat string
	Stats     bool
	Trace     bool
}

// parseArgs processes command-line arguments. It returns the options, a
// flag telling the caller to exit cleanly, or an *ExitError.
func parseArgs(args []string, output io.Writer) (*options, bool, error) {
	fs := flag.NewFlagSet("mazesolve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
mazesolve - solve a CSV maze with breadth-first search.

Usage:
  mazesolve [options] MAZE.csv

  Use "-" to read the maze from standard input.

Options:
`)
		fs.PrintDefaults()
	}

	out := fs.String("o", "", "Write the annotated maze to this file instead of stdout.")
	stepLimit := fs.Int("step-limit", 0, "Abort after this many search steps. 0 uses the solver default.")
	logLevel := fs.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	stats := fs.Bool("stats", false, "Print solve metrics as JSON to stderr.")
	trace := fs.Bool("trace", false, "Log every visited cell at debug level.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, true, nil
	}

	o := &options{
		Input:     fs.Arg(0),
		Output:    *out,
		StepLimit: *stepLimit,
		LogLevel:  strings.ToLower(*logLevel),
		LogFormat: strings.ToLower(*logFormat),
		Stats:     *stats,
		Trace:     *trace,
	}
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	switch o.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if o.StepLimit < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid step-limit: must not be negative"}
	}
	if o.Trace && o.LogLevel != "debug" {
		o.LogLevel = "debug"
	}
	return o, false, nil
}
