// Package metrics exposes the tabulator's Prometheus instrumentation.
// Where pkg/monitoring/prometheus in the retrieved chaos-utils example
// queries a running Prometheus server, this package is the producing
// side of the same client_golang module: it registers and updates the
// series a deployed rcvtab instance exposes for scraping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rcv",
		Name:      "rounds_total",
		Help:      "Number of tabulation rounds run, by contest.",
	}, []string{"contest"})

	EliminationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rcv",
		Name:      "eliminations_total",
		Help:      "Number of candidates eliminated, by contest and strategy.",
	}, []string{"contest", "strategy"})

	SurplusTransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rcv",
		Name:      "surplus_transfers_total",
		Help:      "Number of winner surplus transfers applied, by contest.",
	}, []string{"contest"})

	ExhaustedBallotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rcv",
		Name:      "exhausted_ballots_total",
		Help:      "Number of CVRs that became exhausted, by contest and reason.",
	}, []string{"contest", "reason"})

	TabulationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rcv",
		Name:      "tabulation_duration_seconds",
		Help:      "Wall-clock time to run a complete count, by contest.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"contest"})
)
