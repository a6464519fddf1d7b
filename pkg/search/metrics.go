package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "searches_total",
		Help:      "Event searches submitted past validation.",
	})

	searchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "search_failures_total",
		Help:      "Event searches that failed at the transport or with a non-2xx status.",
	})

	emptyResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "empty_results_total",
		Help:      "Successful searches with zero matching events.",
	})

	staleResultsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "stale_results_dropped_total",
		Help:      "Search results discarded because a newer submission finished first.",
	})
)
