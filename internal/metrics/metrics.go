// Package metrics exposes reload and sidebar shape metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cylondata/docnav/internal/domain"
)

// Reload results.
const (
	ResultUpdated   = "updated"
	ResultUnchanged = "unchanged"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

// Metrics groups the collectors registered on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	reloads    *prometheus.CounterVec
	sections   prometheus.Gauge
	entries    *prometheus.GaugeVec
	lastReload prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docnav",
			Name:      "reloads_total",
			Help:      "Sidebar reload attempts by result.",
		}, []string{"result"}),
		sections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "docnav",
			Name:      "sidebar_sections",
			Help:      "Sections in the served sidebar.",
		}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "docnav",
			Name:      "sidebar_entries",
			Help:      "Entries in the served sidebar by kind.",
		}, []string{"kind"}),
		lastReload: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "docnav",
			Name:      "last_reload_timestamp_seconds",
			Help:      "Unix time of the last successful reload.",
		}),
	}

	m.registry.MustRegister(
		m.reloads, m.sections, m.entries, m.lastReload,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveReload counts one reload attempt.
func (m *Metrics) ObserveReload(result string) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result).Inc()
}

// ObserveSidebar records the shape of the sidebar now being served.
func (m *Metrics) ObserveSidebar(spec *domain.SidebarSpec) {
	if m == nil || spec == nil {
		return
	}
	m.sections.Set(float64(len(spec.Sections)))
	m.entries.WithLabelValues(string(domain.KindDoc)).Set(float64(spec.EntryCount(domain.KindDoc)))
	m.entries.WithLabelValues(string(domain.KindLink)).Set(float64(spec.EntryCount(domain.KindLink)))
	m.lastReload.Set(float64(time.Now().Unix()))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
