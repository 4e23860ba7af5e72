// Package metrics provides Prometheus metrics for the navigation bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharenav_auth_attempts_total",
			Help: "Total authorization checks by result",
		},
		[]string{"result"},
	)

	listingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sharenav_listings_total",
			Help: "Total keyboard pages built",
		},
	)

	treeRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharenav_tree_renders_total",
			Help: "Total tree renders by completeness",
		},
		[]string{"result"},
	)

	transfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharenav_transfers_total",
			Help: "Total file transfer requests by outcome",
		},
		[]string{"status"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sharenav_active_sessions",
			Help: "Number of user sessions created since start",
		},
	)
)

// RecordAuth counts one authorization check ("allowed" or "denied").
func RecordAuth(result string) {
	authAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordListing counts one keyboard page build.
func RecordListing() {
	listingsTotal.Inc()
}

// RecordTreeRender counts one tree render ("full" or "truncated").
func RecordTreeRender(result string) {
	treeRendersTotal.WithLabelValues(result).Inc()
}

// RecordTransfer counts one transfer request
// ("sent", "failed", "too_large").
func RecordTransfer(status string) {
	transfersTotal.WithLabelValues(status).Inc()
}

// SetActiveSessions updates the session gauge.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
