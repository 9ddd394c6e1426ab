package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Prometheus implements [ExploreHooks] and [ServerHooks] on top of its own
// Prometheus registry. Serve Registry() with promhttp.HandlerFor.
type Prometheus struct {
	registry *prometheus.Registry

	sessions        *prometheus.CounterVec
	expansions      *prometheus.CounterVec
	expandDuration  prometheus.Histogram
	nodesCreated    prometheus.Counter
	edgesCreated    prometheus.Counter
	skippedPointers *prometheus.CounterVec

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	streamsActive prometheus.Gauge
}

// NewPrometheus creates the metrics under namespace and registers them, plus
// the Go runtime and process collectors, with a fresh registry.
func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Exploration sessions started, by outcome",
		}, []string{"status"}),
		expansions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expansions_total",
			Help:      "Node expansions, by outcome",
		}, []string{"status"}),
		expandDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expansion_duration_seconds",
			Help:      "Time spent expanding one node",
			Buckets:   prometheus.DefBuckets,
		}),
		nodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_created_total",
			Help:      "Graph nodes created by expansions",
		}),
		edgesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_created_total",
			Help:      "Graph edges created by expansions",
		}),
		skippedPointers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_pointers_total",
			Help:      "Relation pointers that could not be resolved, by relation",
		}, []string{"relation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		streamsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_streams_active",
			Help:      "Open websocket subscriptions",
		}),
	}

	p.registry.MustRegister(
		p.sessions,
		p.expansions,
		p.expandDuration,
		p.nodesCreated,
		p.edgesCreated,
		p.skippedPointers,
		p.httpRequests,
		p.httpDuration,
		p.streamsActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry returns the registry holding all metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) OnSessionStart(_ context.Context, _ string, err error) {
	p.sessions.WithLabelValues(status(err)).Inc()
}

func (p *Prometheus) OnExpand(_ context.Context, _ string, newNodes, newEdges, _ int, d time.Duration, err error) {
	p.expansions.WithLabelValues(status(err)).Inc()
	p.expandDuration.Observe(d.Seconds())
	p.nodesCreated.Add(float64(newNodes))
	p.edgesCreated.Add(float64(newEdges))
}

func (p *Prometheus) OnSkippedPointer(_ context.Context, relation string, _ error) {
	p.skippedPointers.WithLabelValues(relation).Inc()
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) OnStreamOpen(context.Context)  { p.streamsActive.Inc() }
func (p *Prometheus) OnStreamClose(context.Context) { p.streamsActive.Dec() }

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
