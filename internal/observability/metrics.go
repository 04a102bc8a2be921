package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	manifestParses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gbhost",
			Subsystem: "manifest",
			Name:      "parses_total",
			Help:      "Manifest parse attempts by outcome.",
		},
		[]string{"outcome"},
	)
	cportAllocations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gbhost",
			Subsystem: "bus",
			Name:      "cport_allocations_total",
			Help:      "CPort ids handed out.",
		},
	)
	cportFrees = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gbhost",
			Subsystem: "bus",
			Name:      "cport_frees_total",
			Help:      "CPort ids returned to the pool.",
		},
	)
	activeConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "gbhost",
			Subsystem: "bus",
			Name:      "connections_active",
			Help:      "Live connections per host.",
		},
		[]string{"host"},
	)
	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gbhost",
			Subsystem: "bus",
			Name:      "operations_total",
			Help:      "Completed operations by result.",
		},
		[]string{"result"},
	)
	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gbhost",
			Subsystem: "bus",
			Name:      "operation_duration_seconds",
			Help:      "Operation round-trip time in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gbhost",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gbhost",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(manifestParses, cportAllocations, cportFrees,
			activeConnections, operations, operationDuration,
			httpRequests, httpDuration)
	})
}

func RecordManifestParse(outcome string) {
	RegisterMetrics()
	manifestParses.WithLabelValues(outcome).Inc()
}

func RecordCPortAllocation() {
	RegisterMetrics()
	cportAllocations.Inc()
}

func RecordCPortFree() {
	RegisterMetrics()
	cportFrees.Inc()
}

func SetActiveConnections(host string, n int) {
	RegisterMetrics()
	activeConnections.WithLabelValues(host).Set(float64(n))
}

func RecordOperation(result string, duration time.Duration) {
	RegisterMetrics()
	operations.WithLabelValues(result).Inc()
	operationDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
