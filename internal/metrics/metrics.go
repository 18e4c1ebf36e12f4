// Package metrics provides Prometheus metrics for the Photo2Value backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2v_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "p2v_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Derivation Metrics
	AlertsGenerated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "p2v_alerts_generated",
			Help:    "Number of alerts produced per generation pass",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	AlertGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "p2v_alert_generation_duration_seconds",
			Help:    "Time taken to derive the alert feed",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	// Worker Metrics
	SnapshotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2v_portfolio_snapshots_total",
			Help: "Total number of daily portfolio snapshots recorded",
		},
	)

	CompRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2v_comp_refreshes_total",
			Help: "Total number of items whose comps were refreshed",
		},
	)

	RefreshQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "p2v_refresh_queue_size",
			Help: "Number of items waiting in the comp refresh queue",
		},
	)

	// eBay API Metrics
	EbayRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2v_ebay_requests_total",
			Help: "Total number of eBay API requests made",
		},
	)

	EbayQuotaRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "p2v_ebay_quota_remaining",
			Help: "Remaining eBay API requests for today",
		},
	)

	EbayCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2v_ebay_cache_hits_total",
			Help: "eBay searches served from the in-memory cache",
		},
	)

	// Inventory Metrics
	ItemsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "p2v_items_total",
			Help: "Total number of tracked items across all users",
		},
	)

	ItemsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2v_items_created_total",
			Help: "Total number of items created",
		},
	)

	ItemsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2v_items_sold_total",
			Help: "Total number of items marked sold",
		},
	)
)
