package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts entity store mutations by operation.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "squad_store_mutations_total",
		Help: "Total number of entity store mutations by operation",
	}, []string{"operation"})

	// SnapshotWriteErrors counts failed snapshot writes.
	SnapshotWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "squad_snapshot_write_errors_total",
		Help: "Total number of failed state snapshot writes",
	})

	// SnapshotWriteLatency records snapshot write latency in seconds.
	SnapshotWriteLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "squad_snapshot_write_latency_seconds",
		Help:    "State snapshot write latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RedisErrorRate counts Redis errors by command name.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "squad_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MirrorWriteErrors counts failed relational mirror writes by table.
	MirrorWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "squad_mirror_write_errors_total",
		Help: "Total number of failed relational mirror writes by table",
	}, []string{"table"})
)

// ObserveSnapshotWrite records the latency of a snapshot write.
func ObserveSnapshotWrite(start time.Time) {
	SnapshotWriteLatency.Observe(time.Since(start).Seconds())
}
