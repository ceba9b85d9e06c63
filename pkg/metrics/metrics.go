// Package metrics exposes Prometheus collectors for habit mutations and
// timeline growth.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Mutations counts store mutations by operation and outcome.
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consistency_mutations_total",
			Help: "Total number of habit store mutations",
		},
		[]string{"op", "outcome"},
	)

	// WindowGrowth counts timeline extensions by edge.
	WindowGrowth = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consistency_window_growth_total",
			Help: "Total number of timeline window extensions",
		},
		[]string{"edge"}, // edge: future, past
	)

	// WindowDays is the number of dates currently materialized.
	WindowDays = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "consistency_window_days",
			Help: "Number of dates in the timeline window",
		},
	)
)

// RecordMutation counts one mutation.
func RecordMutation(op, outcome string) {
	Mutations.WithLabelValues(op, outcome).Inc()
}

// RecordGrowth counts the edges that grew and updates the window size.
func RecordGrowth(future, past bool, days int) {
	if future {
		WindowGrowth.WithLabelValues("future").Inc()
	}
	if past {
		WindowGrowth.WithLabelValues("past").Inc()
	}
	WindowDays.Set(float64(days))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
