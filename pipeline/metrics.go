package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics groups the collectors updated once per processed notification.
type metrics struct {
	processed  *prometheus.CounterVec
	steps      prometheus.Histogram
	pathLength prometheus.Histogram
	duration   prometheus.Histogram
}

// newMetrics builds the collectors and registers them on reg when it is
// not nil.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		processed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mazerunner",
			Name:      "mazes_processed_total",
			Help:      "Total maze notifications handled, by outcome",
		}, []string{"outcome"}),
		steps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mazerunner",
			Name:      "solve_steps",
			Help:      "Dequeue operations performed per successful solve",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12), // 1 to ~4M
		}),
		pathLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mazerunner",
			Name:      "path_length",
			Help:      "Cells on the entrance-to-exit path per successful solve",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mazerunner",
			Name:      "process_duration_seconds",
			Help:      "Wall time spent on one notification",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		}),
	}
}

func (m *metrics) observe(out Outcome, elapsed time.Duration) {
	m.processed.WithLabelValues(out.Status.String()).Inc()
	m.duration.Observe(elapsed.Seconds())
	if out.Status == Processed {
		m.steps.Observe(float64(out.Metrics.Steps))
		m.pathLength.Observe(float64(out.Metrics.PathLength))
	}
}
