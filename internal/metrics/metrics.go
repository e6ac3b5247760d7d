package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы редиректа
const (
	OutcomeRedirected = "redirected"
	OutcomeNotFound   = "not_found"
	OutcomeInactive   = "inactive"
	OutcomeExpired    = "expired"
	OutcomeError      = "error"
)

// Результаты геопоиска
const (
	GeoResultHit      = "hit"
	GeoResultMiss     = "miss"
	GeoResultError    = "error"
	GeoResultTimeout  = "timeout"
	GeoResultSkipped  = "skipped"
	GeoResultOverride = "override"
	GeoResultFallback = "fallback"
)

var (
	RedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpulse_redirects_total",
			Help: "Total number of redirect requests by outcome",
		},
		[]string{"outcome"},
	)

	GeoLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpulse_geo_lookups_total",
			Help: "Total number of geo resolutions by result",
		},
		[]string{"result"},
	)

	GeoLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkpulse_geo_lookup_duration_seconds",
			Help:    "Duration of geo provider lookups in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"provider"},
	)

	GeoBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "linkpulse_geo_breaker_state",
			Help: "Geo provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)

	ClickPersistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "linkpulse_click_persist_duration_seconds",
			Help:    "Duration of click event inserts in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ClickPersistErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkpulse_click_persist_errors_total",
			Help: "Total number of click events that failed to persist",
		},
	)

	LinkCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpulse_link_cache_requests_total",
			Help: "Link cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkpulse_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkpulse_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordRedirect учитывает исход обработки короткой ссылки
func RecordRedirect(outcome string) {
	RedirectsTotal.WithLabelValues(outcome).Inc()
}

// RecordGeoLookup учитывает результат определения географии
func RecordGeoLookup(result string) {
	GeoLookupsTotal.WithLabelValues(result).Inc()
}

func ObserveGeoLookup(provider string, start time.Time) {
	GeoLookupDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// ObserveClickPersist учитывает длительность записи клика и ошибку, если она была
func ObserveClickPersist(start time.Time, err error) {
	ClickPersistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		ClickPersistErrors.Inc()
	}
}

func RecordLinkCache(result string) {
	LinkCacheRequests.WithLabelValues(result).Inc()
}
