package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "liftlog"

// Manager holds the Prometheus collectors shared by the HTTP API and the
// storage layer.
type Manager struct {
	CounterRequests     *prometheus.CounterVec
	HistRequestDuration prometheus.Histogram
	CounterStoreOps     *prometheus.CounterVec

	reg prometheus.Registerer
}

// NewRegistry returns a registry with build info, Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewTestManager returns a Manager bound to a throwaway registry.
func NewTestManager() *Manager {
	return NewManager(prometheus.NewRegistry())
}

func NewManager(reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total number of HTTP API requests",
		}, []string{"method", "status"}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP API request duration",
			Buckets:   prometheus.DefBuckets,
		}),
		CounterStoreOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kv",
			Name:      "operations_total",
			Help:      "Key-value store operations by backend, op and result",
		}, []string{"backend", "op", "result"}),
		reg: reg,
	}
}

// ObserveCacheHitRatio exports hitRatio as the blob cache hit ratio gauge.
// It panics if called twice on one Manager.
func (m *Manager) ObserveCacheHitRatio(hitRatio func() float64) {
	promauto.With(m.reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "kv",
		Name:      "cache_hit_ratio",
		Help:      "Share of blob cache lookups served from memory",
	}, hitRatio)
}
