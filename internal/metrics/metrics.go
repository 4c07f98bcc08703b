package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Signup and signin attempts by outcome",
		},
		[]string{"operation", "outcome"}, // outcome: success, rejected, error
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: l1, l2; result: hit, miss
	)

	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_connections",
			Help: "Postgres pool connections by pool and state",
		},
		[]string{"pool", "state"},
	)

	RedisPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "redis_pool_connections",
			Help: "Redis pool connections by state",
		},
		[]string{"state"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"limiter"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordAuthAttempt(operation, outcome string) {
	AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

func RecordCacheLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(tier, result).Inc()
}

func RecordRateLimited(limiter string) {
	RateLimited.WithLabelValues(limiter).Inc()
}

func RecordDBPool(pool string, total, idle, acquired int32) {
	DBPoolConnections.WithLabelValues(pool, "total").Set(float64(total))
	DBPoolConnections.WithLabelValues(pool, "idle").Set(float64(idle))
	DBPoolConnections.WithLabelValues(pool, "acquired").Set(float64(acquired))
}

func RecordRedisPool(total, idle uint32) {
	RedisPoolConnections.WithLabelValues("total").Set(float64(total))
	RedisPoolConnections.WithLabelValues("idle").Set(float64(idle))
}
