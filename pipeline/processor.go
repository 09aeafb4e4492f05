package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/mazerunner/bfs"
	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/gridgraph"
	"github.com/katalvlaran/mazerunner/storage"
)

const tracerName = "github.com/katalvlaran/mazerunner/pipeline"

// Processor solves mazes announced by notifications. It is safe for
// concurrent use when its stores are.
type Processor struct {
	objects storage.ObjectStore
	records storage.RecordStore
	opts    Options
	metrics *metrics
	tracer  trace.Tracer
}

// NewProcessor builds a Processor over the given stores.
func NewProcessor(objects storage.ObjectStore, records storage.RecordStore, opts ...Option) (*Processor, error) {
	if objects == nil || records == nil {
		return nil, fmt.Errorf("%w: object and record stores are required", ErrOptionViolation)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	tracer := o.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Processor{
		objects: objects,
		records: records,
		opts:    o,
		metrics: newMetrics(o.Registerer),
		tracer:  tracer,
	}, nil
}

// TargetKey returns the output key for a source key under p's prefix.
func (p *Processor) TargetKey(key string) string { return TargetKey(p.opts.KeyPrefix, key) }

// Process handles one notification. A duplicate target key yields Skipped
// with a nil error; every other failure yields Failed and the error.
func (p *Processor) Process(ctx context.Context, n Notification) (out Outcome, err error) {
	start := time.Now()
	out = Outcome{Notification: n, Status: Failed}

	ctx, span := p.tracer.Start(ctx, "pipeline.Process",
		trace.WithAttributes(
			attribute.String("maze.bucket", n.Bucket),
			attribute.String("maze.key", n.Key),
		))
	defer func() {
		out.Err = err
		span.SetAttributes(attribute.String("maze.outcome", out.Status.String()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "process failed")
		} else {
			span.SetStatus(codes.Ok, out.Status.String())
		}
		span.End()
		p.metrics.observe(out, time.Since(start))
	}()

	if n.Bucket == "" || n.Key == "" {
		return out, fmt.Errorf("%w: %q", ErrInvalidNotification, n.String())
	}
	out.TargetKey = p.TargetKey(n.Key)
	logger := ctxlog.FromContext(ctx).With("bucket", n.Bucket, "key", n.Key, "target_key", out.TargetKey)
	logger.Debug("Processing maze object.")

	raw, err := p.objects.GetObject(ctx, n.Bucket, n.Key)
	if err != nil {
		return out, fmt.Errorf("pipeline: read %s: %w", n, err)
	}

	grid, err := gridgraph.ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("pipeline: parse %s: %w", n, err)
	}

	res, err := bfs.Solve(grid, p.opts.SolveOptions...)
	if err != nil {
		return out, fmt.Errorf("pipeline: solve %s: %w", n, err)
	}
	out.Metrics = res.Metrics()
	span.AddEvent("solved", trace.WithAttributes(
		attribute.Int("maze.steps", out.Metrics.Steps),
		attribute.Int("maze.path_length", out.Metrics.PathLength),
	))
	logger.Info("Found a way out.",
		"entrance", res.Entrance.String(),
		"exit", res.Exit.String(),
		"steps", out.Metrics.Steps,
		"path_length", out.Metrics.PathLength,
	)

	grid.MarkPath(res.Path)
	var buf bytes.Buffer
	if err = grid.Encode(&buf); err != nil {
		return out, fmt.Errorf("pipeline: encode %s: %w", n, err)
	}

	rec := storage.Record{
		storage.IDField: out.TargetKey,
		"stats": map[string]any{
			"iterations":     out.Metrics.Steps,
			"length_of_path": out.Metrics.PathLength,
		},
	}
	if err = p.records.CreateRecord(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			logger.Info("Record already exists, skipping upload.")
			out.Status = Skipped
			return out, nil
		}
		return out, fmt.Errorf("pipeline: record %s: %w", out.TargetKey, err)
	}

	bucket := p.targetBucket(n)
	if err = p.objects.PutObject(ctx, bucket, out.TargetKey, buf.Bytes()); err != nil {
		return out, fmt.Errorf("pipeline: upload %s/%s: %w", bucket, out.TargetKey, err)
	}
	logger.Info("Annotated maze uploaded.", "target_bucket", bucket)

	out.Status = Processed
	return out, nil
}

// ProcessBatch handles ns in order. A failing notification is logged and
// reported in its Outcome; the remaining notifications still run.
func (p *Processor) ProcessBatch(ctx context.Context, ns []Notification) []Outcome {
	logger := ctxlog.FromContext(ctx)
	outcomes := make([]Outcome, 0, len(ns))
	for _, n := range ns {
		out, err := p.Process(ctx, n)
		if err != nil {
			logger.Error("Error processing maze object.", "bucket", n.Bucket, "key", n.Key, "error", err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (p *Processor) targetBucket(n Notification) string {
	if p.opts.TargetBucket != "" {
		return p.opts.TargetBucket
	}
	return n.Bucket
}
