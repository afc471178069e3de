package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records store latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "friendgraph_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StoreErrors counts classified store errors by operation and error code.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendgraph_store_errors_total",
		Help: "Total number of store errors by operation and error code",
	}, []string{"operation", "code"})

	// UserDeletions counts delete-user transactions by final state.
	UserDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendgraph_user_deletions_total",
		Help: "Delete-user transactions by final state",
	}, []string{"state"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendgraph_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
