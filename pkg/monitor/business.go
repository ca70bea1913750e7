package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds the marketplace-level counters.
type BusinessMetrics struct {
	ClaimsCreatedTotal    prometheus.Counter
	ClaimsCompletedTotal  *prometheus.CounterVec
	RewardsIssuedTotal    *prometheus.CounterVec
	ScanEventsTotal       *prometheus.CounterVec
	RecycleStepsTotal     *prometheus.CounterVec
	CompletionReplayTotal prometheus.Counter
}

// Global Metrics Instance
var Business *BusinessMetrics

// InitBusinessMetrics initializes the business-level metrics.
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		ClaimsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "market_claims_created_total",
			Help: "The total number of claims created",
		}),
		ClaimsCompletedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "market_claims_completed_total",
			Help: "The total number of completed claims",
		}, []string{"source"}),
		RewardsIssuedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "market_rewards_issued_total",
			Help: "The total number of reward credits issued",
		}, []string{"purpose"}),
		ScanEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "market_scan_events_total",
			Help: "The total number of recorded scan events",
		}, []string{"type"}),
		RecycleStepsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "market_recycle_steps_total",
			Help: "The total number of recycle intake/outtake scans",
		}, []string{"step"}),
		CompletionReplayTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "market_completion_replays_total",
			Help: "The total number of idempotent completion replays",
		}),
	}
}
