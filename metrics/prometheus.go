package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "routegate"

// Options for the prometheus metrics backend.
type Options struct {

	// Prefix used as the namespace of all metric names. Defaults to
	// "routegate".
	Prefix string

	// Registry to register the collectors in. A new one is created
	// when nil.
	Registry *prometheus.Registry
}

// Prometheus implements the Metrics interface backed by prometheus
// collectors.
type Prometheus struct {
	registry        *prometheus.Registry
	compileDuration prometheus.Histogram
	invalidRoutes   *prometheus.CounterVec
	routes          prometheus.Gauge
}

// NewPrometheus creates and registers the route compilation
// collectors.
func NewPrometheus(o Options) *Prometheus {
	if o.Prefix == "" {
		o.Prefix = defaultNamespace
	}

	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}

	p := &Prometheus{
		registry: o.Registry,
		compileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.Prefix,
			Subsystem: "routing",
			Name:      "compile_duration_seconds",
			Help:      "Duration of compiling the current route definitions.",
		}),
		// the route id is logged, not labeled, to keep the label
		// cardinality bounded
		invalidRoutes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.Prefix,
			Subsystem: "routing",
			Name:      "invalid_routes_total",
			Help:      "Route definitions that failed to compile, by failure reason.",
		}, []string{"reason"}),
		routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: o.Prefix,
			Subsystem: "routing",
			Name:      "routes",
			Help:      "Number of routes produced by the last definitions read.",
		}),
	}

	p.registry.MustRegister(p.compileDuration, p.invalidRoutes, p.routes)
	return p
}

// Handler serves the collected metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) MeasureCompile(start time.Time) {
	p.compileDuration.Observe(time.Since(start).Seconds())
}

func (p *Prometheus) IncInvalidRoute(_, reason string) {
	p.invalidRoutes.WithLabelValues(reason).Inc()
}

func (p *Prometheus) UpdateRoutes(n int) {
	p.routes.Set(float64(n))
}
