package suggest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "place_lookups_total",
		Help:      "Place lookups actually fired after debouncing.",
	})

	lookupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "place_lookup_failures_total",
		Help:      "Place lookups that errored; always silent to the user.",
	})

	staleDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eventserve",
		Name:      "stale_lookup_responses_dropped_total",
		Help:      "Lookup responses discarded because a newer keystroke superseded them.",
	})
)
