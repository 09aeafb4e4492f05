package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/mazerunner/internal/app"
	"github.com/katalvlaran/mazerunner/records"
	"github.com/katalvlaran/mazerunner/trigger"
)

// newMux mounts the daemon's HTTP surface.
func newMux(stores *app.Stores, proc trigger.Processor, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/records", records.NewHandler(stores.Records))
	mux.Handle("/notifications", trigger.NewHTTPHandler(proc))
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}
