package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service. The registry is
// private to the process; nothing registers against the global default.
type Metrics struct {
	registry *prometheus.Registry

	// Webhook ingress
	UpdatesReceivedTotal prometheus.Counter
	UpdatesRejectedTotal *prometheus.CounterVec

	// Dispatch
	DispatchesTotal    *prometheus.CounterVec
	HandlerErrorsTotal *prometheus.CounterVec

	// Outbound gateway
	MessagesSentTotal prometheus.Counter
	SendRetriesTotal  prometheus.Counter
	BroadcastsTotal   prometheus.Counter

	// AI backend
	AIRequestsTotal *prometheus.CounterVec

	// Quran content cache
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// NewMetrics creates and registers all metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		UpdatesReceivedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "webhook_updates_received_total",
				Help: "Total number of webhook requests received",
			},
		),
		UpdatesRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_updates_rejected_total",
				Help: "Total number of webhook requests rejected before dispatch",
			},
			[]string{"reason"},
		),

		DispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatches_total",
				Help: "Total number of update dispatches by outcome",
			},
			[]string{"outcome"},
		),
		HandlerErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "handler_errors_total",
				Help: "Total number of contained handler failures",
			},
			[]string{"handler"},
		),

		MessagesSentTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "telegram_messages_sent_total",
				Help: "Total number of Telegram messages sent",
			},
		),
		SendRetriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "telegram_send_retries_total",
				Help: "Total number of retried Telegram send attempts",
			},
		),
		BroadcastsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "channel_broadcasts_total",
				Help: "Total number of channel broadcasts sent",
			},
		),

		AIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of AI backend requests by status",
			},
			[]string{"status"},
		),

		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quran_cache_hits_total",
				Help: "Total number of Quran content cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quran_cache_misses_total",
				Help: "Total number of Quran content cache misses",
			},
		),
	}

	m.registerMetrics()

	return m
}

func (m *Metrics) registerMetrics() {
	m.registry.MustRegister(m.UpdatesReceivedTotal)
	m.registry.MustRegister(m.UpdatesRejectedTotal)
	m.registry.MustRegister(m.DispatchesTotal)
	m.registry.MustRegister(m.HandlerErrorsTotal)
	m.registry.MustRegister(m.MessagesSentTotal)
	m.registry.MustRegister(m.SendRetriesTotal)
	m.registry.MustRegister(m.BroadcastsTotal)
	m.registry.MustRegister(m.AIRequestsTotal)
	m.registry.MustRegister(m.CacheHitsTotal)
	m.registry.MustRegister(m.CacheMissesTotal)
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
