package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mazerunner/pipeline"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen []pipeline.Notification
	done chan struct{}
}

func (r *recordingProcessor) Process(_ context.Context, n pipeline.Notification) (pipeline.Outcome, error) {
	r.mu.Lock()
	r.seen = append(r.seen, n)
	full := len(r.seen) == cap(r.done)
	r.mu.Unlock()
	if full {
		close(r.done)
	}
	return pipeline.Outcome{Notification: n, Status: pipeline.Processed}, nil
}

func TestParseNotification(t *testing.T) {
	tests := []struct {
		name    string
		args    []any
		want    pipeline.Notification
		wantErr bool
	}{
		{"Object", []any{map[string]any{"bucket": "b", "key": "k"}}, pipeline.Notification{Bucket: "b", Key: "k"}, false},
		{"JSONText", []any{`{"bucket":"b","key":"k"}`}, pipeline.Notification{Bucket: "b", Key: "k"}, false},
		{"JSONBytes", []any{[]byte(`{"key":"k"}`)}, pipeline.Notification{Bucket: "default", Key: "k"}, false},
		{"KeyOnlyObject", []any{map[string]any{"key": "k"}}, pipeline.Notification{Bucket: "default", Key: "k"}, false},
		{"NoKey", []any{map[string]any{"bucket": "b"}}, pipeline.Notification{}, true},
		{"BadJSON", []any{"{"}, pipeline.Notification{}, true},
		{"WrongType", []any{42}, pipeline.Notification{}, true},
		{"Empty", nil, pipeline.Notification{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseNotification("default", tc.args...)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrBadEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubscriber_ProcessesInOrder(t *testing.T) {
	proc := &recordingProcessor{done: make(chan struct{}, 3)}
	s, err := NewSubscriber(SubscriberConfig{URL: "http://localhost:3000", DefaultBucket: "mazes"}, proc)
	require.NoError(t, err)
	assert.Equal(t, DefaultEvent, s.cfg.Event)
	assert.Equal(t, "/", s.cfg.Namespace)

	s.onEvent(map[string]any{"key": "a.csv"})
	s.onEvent("not json")
	s.onEvent(map[string]any{"bucket": "other", "key": "b.csv"})
	s.onEvent(`{"key":"c.csv"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.drain(ctx)

	select {
	case <-proc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not process queued events")
	}
	proc.mu.Lock()
	defer proc.mu.Unlock()
	assert.Equal(t, []pipeline.Notification{
		{Bucket: "mazes", Key: "a.csv"},
		{Bucket: "other", Key: "b.csv"},
		{Bucket: "mazes", Key: "c.csv"},
	}, proc.seen)
}

func TestSubscriber_QueueFullDrops(t *testing.T) {
	s, err := NewSubscriber(SubscriberConfig{URL: "http://localhost:3000", QueueSize: 1}, &recordingProcessor{})
	require.NoError(t, err)
	s.onEvent(map[string]any{"bucket": "b", "key": "1"})
	s.onEvent(map[string]any{"bucket": "b", "key": "2"})
	assert.Len(t, s.queue, 1)
}

func TestNewSubscriber_RequiresURL(t *testing.T) {
	_, err := NewSubscriber(SubscriberConfig{}, &recordingProcessor{})
	assert.Error(t, err)
}
