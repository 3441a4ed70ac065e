// Package metrics exposes Prometheus counters for the draw and scoring
// paths, served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "uni_arena"

var (
	// SchedulesGenerated counts completed draw requests.
	SchedulesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedules_generated_total",
		Help:      "Number of tournament schedules generated.",
	})

	// MatchesDrawn counts matches produced by the generators.
	MatchesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_drawn_total",
		Help:      "Number of matches produced by schedule generation.",
	})

	// ScoreUpdates counts applied score updates by sport code; updates on
	// sports without a handler are labelled "generic".
	ScoreUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_updates_total",
		Help:      "Number of score updates applied, by sport code.",
	}, []string{"sport"})

	// MatchesCompleted counts explicit end-of-match calls.
	MatchesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_completed_total",
		Help:      "Number of matches completed.",
	})
)
