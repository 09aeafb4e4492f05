// Command mazed is a long-running maze solving daemon. It serves the
// records API and a notification endpoint over HTTP, exposes Prometheus
// metrics, and optionally subscribes to a socket.io notification hub.
//
// Usage:
//
//	mazed [-config mazed.hcl]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/katalvlaran/mazerunner/config"
	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/internal/app"
	"github.com/katalvlaran/mazerunner/trigger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("mazed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "mazed.hcl", "Path to the configuration file (.hcl or .toml).")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := cfg.Logger(stderr)
	slog.SetDefault(logger)
	ctx = ctxlog.WithLogger(ctx, logger)

	stores, err := app.NewStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	proc, err := app.NewProcessor(cfg, stores, reg)
	if err != nil {
		return err
	}

	var sub *trigger.Subscriber
	if n := cfg.Notifications; n != nil {
		sub, err = trigger.NewSubscriber(trigger.SubscriberConfig{
			URL:           n.URL,
			Namespace:     n.Namespace,
			Event:         n.Event,
			DefaultBucket: n.SourceBucket,
		}, proc)
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newMux(stores, proc, reg),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening.", "addr", srv.Addr, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mazed: http server: %w", err)
		}
	}()

	if sub != nil {
		go func() {
			if err := sub.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down.")
	case err = <-errCh:
		logger.Error("Stopping after error.", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("HTTP server shutdown failed.", "error", serr)
	}
	return err
}
