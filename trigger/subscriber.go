package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/pipeline"
)

// Subscriber defaults.
const (
	DefaultEvent          = "object_created"
	DefaultConnectTimeout = 15 * time.Second
	DefaultQueueSize      = 64
)

// ErrBadEvent is returned for an event payload that is not a notification.
var ErrBadEvent = errors.New("trigger: malformed object_created payload")

// SubscriberConfig describes the socket.io hub to listen to.
type SubscriberConfig struct {
	URL       string
	Namespace string
	Event     string
	// DefaultBucket is used when an event names only a key.
	DefaultBucket  string
	ConnectTimeout time.Duration
	QueueSize      int
}

// Subscriber listens for object-created events on a socket.io namespace
// and processes them one at a time, in arrival order.
type Subscriber struct {
	cfg    SubscriberConfig
	proc   Processor
	queue  chan pipeline.Notification
	logger *slog.Logger
}

// NewSubscriber validates cfg and fills its defaults.
func NewSubscriber(cfg SubscriberConfig, proc Processor) (*Subscriber, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("trigger: subscriber needs a url")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	return &Subscriber{
		cfg:    cfg,
		proc:   proc,
		queue:  make(chan pipeline.Notification, cfg.QueueSize),
		logger: slog.Default(),
	}, nil
}

// Run connects, then processes events until ctx is cancelled. It returns
// nil on cancellation and an error if the connection cannot be made.
func (s *Subscriber) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "subscriber", "url", s.cfg.URL)
	s.logger = logger

	io, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("Disconnecting from notification hub.", "sid", io.Id())
		io.Disconnect()
	}()

	io.On(types.EventName(s.cfg.Event), s.onEvent)
	io.On(types.EventName("disconnect"), func(reason ...any) {
		logger.Warn("Notification hub disconnected.", "reason", fmt.Sprint(reason...))
	})
	logger.Info("Listening for notifications.", "event", s.cfg.Event)

	s.drain(ctx)
	return nil
}

func (s *Subscriber) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx)

	parsedURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("trigger: failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to notification hub.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("trigger: socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("trigger: context cancelled while waiting for socket.io connection")
	case <-time.After(s.cfg.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("trigger: timed out after %v waiting for socket.io connection", s.cfg.ConnectTimeout)
	}
}

// onEvent runs on the socket's goroutine; it only parses and enqueues.
func (s *Subscriber) onEvent(args ...any) {
	n, err := parseNotification(s.cfg.DefaultBucket, args...)
	if err != nil {
		s.logger.Warn("Dropping event.", "error", err)
		return
	}
	select {
	case s.queue <- n:
	default:
		s.logger.Warn("Queue full, dropping event.", "bucket", n.Bucket, "key", n.Key)
	}
}

// drain processes queued notifications until ctx is done.
func (s *Subscriber) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-s.queue:
			if _, err := s.proc.Process(ctx, n); err != nil {
				s.logger.Error("Error processing maze object.", "bucket", n.Bucket, "key", n.Key, "error", err)
			}
		}
	}
}

// parseNotification accepts a decoded JSON object, a JSON text, or raw
// JSON bytes carrying "bucket" and "key".
func parseNotification(defaultBucket string, args ...any) (pipeline.Notification, error) {
	var n pipeline.Notification
	if len(args) == 0 {
		return n, fmt.Errorf("%w: no payload", ErrBadEvent)
	}
	switch v := args[0].(type) {
	case map[string]any:
		n.Bucket, _ = v["bucket"].(string)
		n.Key, _ = v["key"].(string)
	case string:
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			return n, fmt.Errorf("%w: %v", ErrBadEvent, err)
		}
	case []byte:
		if err := json.Unmarshal(v, &n); err != nil {
			return n, fmt.Errorf("%w: %v", ErrBadEvent, err)
		}
	default:
		return n, fmt.Errorf("%w: unexpected payload type %T", ErrBadEvent, v)
	}
	if n.Bucket == "" {
		n.Bucket = defaultBucket
	}
	if n.Bucket == "" || n.Key == "" {
		return n, fmt.Errorf("%w: bucket and key are required", ErrBadEvent)
	}
	return n, nil
}
