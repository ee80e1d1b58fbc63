// Package metrics exposes Prometheus metrics for the harness.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HarnessMetrics holds all Prometheus metrics for the harness.
type HarnessMetrics struct {
	// Monitor counters
	PollRounds      prometheus.Counter
	TxConfirmed     prometheus.Counter
	TxReverted      prometheus.Counter
	ConfirmTimeouts prometheus.Counter
	TxBroadcast     *prometheus.CounterVec

	// Histograms
	ConfirmLatency prometheus.Histogram
	PollLatency    prometheus.Histogram

	// Gauges
	WatchSetSize prometheus.Gauge
}

// New creates and registers all harness metrics.
func New(reg prometheus.Registerer) *HarnessMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &HarnessMetrics{
		PollRounds: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chainharness_poll_rounds_total",
				Help: "Total receipt poll rounds across all monitoring calls",
			},
		),

		TxConfirmed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chainharness_transactions_confirmed_total",
				Help: "Transactions that reached their confirmation depth",
			},
		),

		TxReverted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chainharness_transactions_reverted_total",
				Help: "Confirmed transactions whose receipt reported failure status",
			},
		),

		ConfirmTimeouts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chainharness_confirmation_timeouts_total",
				Help: "Monitoring calls that hit the wall-clock deadline",
			},
		),

		TxBroadcast: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainharness_transactions_broadcast_total",
				Help: "Raw transaction submissions by outcome",
			},
			[]string{"status"},
		),

		ConfirmLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chainharness_confirmation_latency_seconds",
				Help:    "Wall-clock time from monitoring start to full confirmation",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),

		PollLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chainharness_poll_latency_seconds",
				Help:    "Round-trip time of batched receipt polls",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),

		WatchSetSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chainharness_watch_set_size",
				Help: "Transactions currently awaiting confirmation",
			},
		),
	}
}

// RecordBroadcast records a raw transaction submission.
func (m *HarnessMetrics) RecordBroadcast(ok bool) {
	status := "sent"
	if !ok {
		status = "error"
	}
	m.TxBroadcast.WithLabelValues(status).Inc()
}
