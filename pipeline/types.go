package pipeline

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/mazerunner/bfs"
)

// DefaultKeyPrefix is prepended to source keys when no prefix is configured.
const DefaultKeyPrefix = "processed"

// Sentinel errors for notification processing.
var (
	// ErrInvalidNotification is returned for a notification without bucket or key.
	ErrInvalidNotification = errors.New("pipeline: notification needs a bucket and a key")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pipeline: invalid option supplied")
)

// Notification announces a newly created maze object.
type Notification struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// String returns "bucket/key".
func (n Notification) String() string { return n.Bucket + "/" + n.Key }

// TargetKey derives the key of the annotated output and of its record.
func TargetKey(prefix, key string) string { return prefix + "_" + key }

// Status classifies what happened to one notification.
type Status int

const (
	// Failed means some stage returned an error; Outcome.Err holds it.
	Failed Status = iota
	// Processed means the record was inserted and the grid uploaded.
	Processed
	// Skipped means a record for the target key already existed.
	Skipped
)

// String returns the lowercase status name used in logs and metric labels.
func (s Status) String() string {
	switch s {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome reports the result of processing a single notification.
type Outcome struct {
	Notification Notification
	TargetKey    string
	Status       Status
	Metrics      bfs.Metrics
	Err          error
}

// Option configures a Processor.
type Option func(*Options)

// Options holds Processor settings.
type Options struct {
	// KeyPrefix is joined to source keys with "_".
	KeyPrefix string

	// TargetBucket receives annotated grids. Empty means the source bucket.
	TargetBucket string

	// SolveOptions are passed to every bfs.Solve call.
	SolveOptions []bfs.Option

	// Registerer receives the pipeline collectors. Nil leaves them unregistered.
	Registerer prometheus.Registerer

	// Tracer starts the per-notification span.
	Tracer trace.Tracer

	err error
}

// DefaultOptions returns Options with DefaultKeyPrefix and nothing else set.
func DefaultOptions() Options {
	return Options{KeyPrefix: DefaultKeyPrefix}
}

// WithKeyPrefix sets the target key prefix. An empty prefix is invalid.
func WithKeyPrefix(prefix string) Option {
	return func(o *Options) {
		if prefix == "" {
			o.err = fmt.Errorf("%w: KeyPrefix cannot be empty", ErrOptionViolation)
			return
		}
		o.KeyPrefix = prefix
	}
}

// WithTargetBucket sets the bucket annotated grids are written to.
func WithTargetBucket(bucket string) Option {
	return func(o *Options) { o.TargetBucket = bucket }
}

// WithSolveOptions appends options forwarded to bfs.Solve.
func WithSolveOptions(opts ...bfs.Option) Option {
	return func(o *Options) { o.SolveOptions = append(o.SolveOptions, opts...) }
}

// WithStepLimit is shorthand for WithSolveOptions(bfs.WithStepLimit(n)).
// Zero keeps the solver default.
func WithStepLimit(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: StepLimit must not be negative (%d)", ErrOptionViolation, n)
		case n > 0:
			o.SolveOptions = append(o.SolveOptions, bfs.WithStepLimit(n))
		}
	}
}

// WithRegisterer registers the pipeline metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) { o.Registerer = reg }
}

// WithTracer overrides the tracer obtained from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}
