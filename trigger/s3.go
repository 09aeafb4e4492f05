// Package trigger feeds object-created notifications from outside sources
// into a pipeline.Processor: S3 event payloads delivered to a Lambda
// function, socket.io events from a notification hub, and a plain HTTP
// endpoint.
package trigger

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/pipeline"
)

// BatchProcessor processes notifications in order, isolating failures.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, ns []pipeline.Notification) []pipeline.Outcome
}

// Response is the answer returned to the S3 event invoker.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// successBody is the JSON string returned for every handled event.
var successBody = func() string {
	b, _ := json.Marshal("Event processed successfully")
	return string(b)
}()

// S3Handler handles S3 object-created events.
type S3Handler struct {
	proc BatchProcessor
}

// NewS3Handler returns an S3Handler that hands notifications to proc.
func NewS3Handler(proc BatchProcessor) *S3Handler {
	return &S3Handler{proc: proc}
}

// Handle processes every record in ev. Per-record failures are logged by
// the processor and never change the response, which is always 200.
func (h *S3Handler) Handle(ctx context.Context, ev events.S3Event) (Response, error) {
	logger := ctxlog.FromContext(ctx)
	ns := Notifications(ctx, ev)
	logger.Info("Received S3 event.", "records", len(ns))

	outs := h.proc.ProcessBatch(ctx, ns)
	var processed, skipped, failed int
	for _, o := range outs {
		switch o.Status {
		case pipeline.Processed:
			processed++
		case pipeline.Skipped:
			skipped++
		default:
			failed++
		}
	}
	logger.Info("S3 event handled.", "processed", processed, "skipped", skipped, "failed", failed)

	return Response{StatusCode: 200, Body: successBody}, nil
}

// Notifications converts the records of an S3 event. Object keys arrive
// form-encoded and are decoded with '+' read as a space. A key with a
// malformed escape keeps its '%' sequences but still has '+' replaced.
func Notifications(ctx context.Context, ev events.S3Event) []pipeline.Notification {
	ns := make([]pipeline.Notification, 0, len(ev.Records))
	for _, r := range ev.Records {
		key, err := url.QueryUnescape(r.S3.Object.Key)
		if err != nil {
			ctxlog.FromContext(ctx).Warn("Could not decode object key, using it verbatim.",
				"key", r.S3.Object.Key, "error", err)
			key = strings.ReplaceAll(r.S3.Object.Key, "+", " ")
		}
		ns = append(ns, pipeline.Notification{Bucket: r.S3.Bucket.Name, Key: key})
	}
	return ns
}
