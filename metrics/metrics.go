package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_explorer_provider_requests_total",
		Help: "Total Google Places requests by operation and outcome",
	}, []string{"operation", "outcome"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "review_explorer_provider_duration_ms",
		Help:    "Google Places call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
	}, []string{"operation"})
	FallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_explorer_mock_fallback_total",
		Help: "Total requests answered by the mock catalog after a provider failure",
	}, []string{"operation"})
	BreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "review_explorer_circuit_breaker_state",
		Help: "Current state of the provider circuit breaker (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})
	QuotaRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_explorer_quota_rejected_total",
		Help: "Total place details requests rejected by the daily quota",
	})
	StaleResponsesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_explorer_stale_responses_total",
		Help: "Total autocomplete responses discarded because a newer query superseded them",
	})
	SummaryOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_explorer_summary_outcomes_total",
		Help: "AI summary requests by source (google, webhook, demo, unavailable)",
	}, []string{"source"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_explorer_http_requests_total",
		Help: "Total HTTP API requests by route and status",
	}, []string{"route", "status"})
	ThrottledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_explorer_throttled_total",
		Help: "Total inbound requests rejected by the throttle",
	})
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderDurationMs)
	prometheus.MustRegister(FallbackTotal)
	prometheus.MustRegister(BreakerState)
	prometheus.MustRegister(QuotaRejectedTotal)
	prometheus.MustRegister(StaleResponsesTotal)
	prometheus.MustRegister(SummaryOutcomesTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(ThrottledTotal)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
