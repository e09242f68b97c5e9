// file: metrics/prometheus.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus exposes counters for scraping at /metrics.
type Prometheus struct {
	registry       *prometheus.Registry
	webhook        *prometheus.CounterVec
	persistFailure *prometheus.CounterVec
	moderation     *prometheus.CounterVec
	watchers       prometheus.Gauge
}

// NewPrometheus registers the app's collectors on a private registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		webhook: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mentora",
			Name:      "webhook_requests_total",
			Help:      "Agent webhook calls by intent kind and outcome.",
		}, []string{"intent_kind", "outcome"}),
		persistFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mentora",
			Name:      "persist_failures_total",
			Help:      "Webhook writes that failed after the user was told they succeeded.",
		}, []string{"collection"}),
		moderation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mentora",
			Name:      "moderation_actions_total",
			Help:      "Admin dashboard actions by action and outcome.",
		}, []string{"action", "outcome"}),
		watchers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mentora",
			Name:      "live_dashboard_watchers",
			Help:      "Open live dashboard connections.",
		}),
	}
	p.registry.MustRegister(
		p.webhook, p.persistFailure, p.moderation, p.watchers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) WebhookRequest(kind, outcome string) {
	p.webhook.WithLabelValues(kind, outcome).Inc()
}

func (p *Prometheus) PersistFailure(collection string) {
	p.persistFailure.WithLabelValues(collection).Inc()
}

func (p *Prometheus) ModerationAction(action, outcome string) {
	p.moderation.WithLabelValues(action, outcome).Inc()
}

func (p *Prometheus) LiveWatchers(n int) {
	p.watchers.Set(float64(n))
}
