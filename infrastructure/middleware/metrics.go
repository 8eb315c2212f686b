// Package middleware provides cross-cutting decorators for evidence
// collectors: Prometheus metrics, OpenTelemetry tracing, and structured
// logging. Decorators compose through ports.Chain and leave collector
// semantics untouched.
package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// CollectorMetrics records per-collector run counts and latencies in the
// global Prometheus registry.
type CollectorMetrics struct {
	runsTotal *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewCollectorMetrics creates the metrics and registers them in the
// global Prometheus registry. Call once per process.
func NewCollectorMetrics() *CollectorMetrics {
	return &CollectorMetrics{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collector_runs_total",
				Help: "Total number of evidence collector executions.",
			},
			[]string{"collector", "outcome"},
		),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "collector_duration_seconds",
				Help:    "Evidence collector execution time.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"collector"},
		),
	}
}

// Middleware returns the decorator recording into these metrics.
func (m *CollectorMetrics) Middleware() ports.Middleware {
	return func(next ports.Collector) ports.Collector {
		return &metricsCollector{next: next, metrics: m}
	}
}

type metricsCollector struct {
	next    ports.Collector
	metrics *CollectorMetrics
}

func (c *metricsCollector) ID() domain.CollectorID { return c.next.ID() }

func (c *metricsCollector) Timeout() time.Duration { return c.next.Timeout() }

func (c *metricsCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	start := time.Now()
	evidence, err := c.next.Execute(ctx, subject, condition)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	name := string(c.next.ID())
	c.metrics.runsTotal.WithLabelValues(name, outcome).Inc()
	c.metrics.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	return evidence, err
}
