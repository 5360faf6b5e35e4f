package hashroute

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rohanthewiz/hashroute/consts"
)

// MetricsOptions configures the exported metrics.
type MetricsOptions struct {
	// Namespace defaults to consts.MetricsNamespace.
	Namespace string

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Buckets are the dispatch duration histogram buckets.
	// Default: prometheus.DefBuckets.
	Buckets []float64
}

// Metrics records dispatch outcomes for a Router. Attach via RouterOptions.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   prometheus.Histogram
	routes     prometheus.Gauge
}

// NewMetrics builds and registers the metric set.
func NewMetrics(opts ...MetricsOptions) *Metrics {
	var o MetricsOptions
	if len(opts) == 1 {
		o = opts[0]
	}

	if o.Namespace == "" {
		o.Namespace = consts.MetricsNamespace
	}
	if o.Registry == nil {
		o.Registry = prometheus.DefaultRegisterer
	}
	if o.Buckets == nil {
		o.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(o.Registry)

	return &Metrics{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.Namespace,
			Name:      "dispatches_total",
			Help:      "Dispatch attempts by outcome (matched, unmatched, error)",
		}, []string{"outcome"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.Namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent matching and running a route handler",
			Buckets:   o.Buckets,
		}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: o.Namespace,
			Name:      "routes_registered",
			Help:      "Number of routes in the table",
		}),
	}
}

// observeDispatch records one dispatch. Nil-safe so the router can call it
// unconditionally.
func (m *Metrics) observeDispatch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// routeAdded records a route registration. Nil-safe.
func (m *Metrics) routeAdded() {
	if m == nil {
		return
	}
	m.routes.Inc()
}
