package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ContentViewBuilds counts view pipeline executions by tier.
	ContentViewBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vipgate_content_view_builds_total",
		Help: "Total number of content view pipeline executions by tier",
	}, []string{"tier"})

	// ContentViewLatency records the time spent filtering/sorting/grouping.
	ContentViewLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vipgate_content_view_build_seconds",
		Help:    "Content view pipeline latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"tier"})

	// VipTransitions counts lifecycle transitions by action and outcome.
	VipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vipgate_vip_transitions_total",
		Help: "Total VIP lifecycle transitions by action and outcome",
	}, []string{"action", "outcome"})

	// ReactionEvents counts emoji reactions recorded, by emoji name.
	ReactionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vipgate_reactions_total",
		Help: "Total emoji reactions recorded by emoji name",
	}, []string{"emoji"})
)

// ObserveViewBuild records one pipeline execution for the tier.
func ObserveViewBuild(tier string, start time.Time) {
	ContentViewBuilds.WithLabelValues(tier).Inc()
	ContentViewLatency.WithLabelValues(tier).Observe(time.Since(start).Seconds())
}

// RecordVipTransition records a lifecycle transition outcome.
func RecordVipTransition(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	VipTransitions.WithLabelValues(action, outcome).Inc()
}
