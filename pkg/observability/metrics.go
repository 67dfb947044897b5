package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classification outcomes
const (
	OutcomeMatched  = "matched"
	OutcomeUnknown  = "unknown"
	OutcomeRejected = "rejected"
	OutcomeEmpty    = "empty"
)

var (
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stagetrack_classifications_total",
		Help: "The total number of classified statuses by outcome",
	}, []string{"outcome"})

	ActiveStageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stagetrack_active_stage_total",
		Help: "Classifications by active stage and state",
	}, []string{"stage", "state"})

	CandidateLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stagetrack_candidate_lookup_duration_seconds",
		Help:    "Duration of candidate source lookups",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	PipelineStages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stagetrack_pipeline_stages",
		Help: "Number of stages in the loaded pipeline",
	})
)

// ObserveLookup records a candidate source call
func ObserveLookup(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CandidateLookupDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}
