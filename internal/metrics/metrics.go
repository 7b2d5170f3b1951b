package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Poll metrics - Track the latest-ledger cadence
var (
	PollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_polls_total",
			Help: "Total number of latest-ledger polls by source (api or simulated)",
		},
		[]string{"source"},
	)

	PollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_poll_duration_seconds",
		Help:    "Time taken by a latest-ledger request, including failures",
		Buckets: prometheus.DefBuckets,
	})

	LedgersIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_ledgers_ingested_total",
		Help: "Number of distinct ledgers pushed into the history window",
	})

	DuplicatePolls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_duplicate_polls_total",
		Help: "Polls that returned the sequence already displayed",
	})
)

// State metrics - Track what the dashboard is currently showing
var (
	CurrentLedger = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_current_ledger",
		Help: "Ledger sequence currently displayed",
	})

	Online = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_online",
		Help: "Connectivity mode: 1=online, 0=offline (simulated)",
	})
)

// Lookup metrics - Track account/transaction lookups
var (
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_lookups_total",
			Help: "Total number of lookups by query kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	AnchorDraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_anchor_drafts_total",
			Help: "Total number of document anchor drafts by outcome",
		},
		[]string{"outcome"},
	)
)

// Error metrics - Track failures
var (
	ViewErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_view_errors_total",
			Help: "Total number of view render failures by view",
		},
		[]string{"view"},
	)
)
