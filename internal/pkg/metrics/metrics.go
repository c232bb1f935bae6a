package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Order settlement outcomes.
const (
	OrderCompleted    = "completed"
	OrderInsufficient = "insufficient_credits"
	OrderRejected     = "rejected"
	OrderFailed       = "failed"
)

var (
	creditsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "urbavisu_credits_applied_total",
		Help: "Ledger entries written, by credit type.",
	}, []string{"type"})

	creditsQuantity = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "urbavisu_credits_quantity_total",
		Help: "Absolute credit quantity moved, by credit type.",
	}, []string{"type"})

	orders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "urbavisu_orders_total",
		Help: "Order settlement attempts, by result.",
	}, []string{"result"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "urbavisu_http_request_duration_seconds",
		Help:    "HTTP request latency, by route and status class.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// CreditApplied records one ledger entry.
func CreditApplied(creditType string, quantity int) {
	creditsApplied.WithLabelValues(creditType).Inc()
	if quantity < 0 {
		quantity = -quantity
	}
	creditsQuantity.WithLabelValues(creditType).Add(float64(quantity))
}

// OrderSettled records an order attempt outcome.
func OrderSettled(result string) {
	orders.WithLabelValues(result).Inc()
}

// ObserveHTTP records a finished request.
func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
