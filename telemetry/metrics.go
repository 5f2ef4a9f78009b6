package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accidentrisk_predictions_total",
		Help: "Total number of risk predictions by level.",
	}, []string{"level"})
	predictionScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "accidentrisk_prediction_score",
		Help:    "Distribution of risk scores.",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accidentrisk_upstream_requests_total",
		Help: "Total number of upstream provider requests by outcome.",
	}, []string{"service", "outcome"})
	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "accidentrisk_upstream_duration_seconds",
		Help:    "Duration of upstream provider requests.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"service"})
	alcoholLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accidentrisk_alcohol_lookups_total",
		Help: "Total number of alcohol lookups by outcome.",
	}, []string{"outcome"})
)

func ObservePrediction(level string, score int) {
	predictionsTotal.WithLabelValues(level).Inc()
	predictionScore.Observe(float64(score))
}

// ObserveUpstream records one provider call. outcome is "ok", "error" or
// "status" (the provider answered with a non-OK status).
func ObserveUpstream(service, outcome string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(service, outcome).Inc()
	upstreamDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

func ObserveAlcoholLookup(found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	alcoholLookups.WithLabelValues(outcome).Inc()
}
