// Package metrics collects per-run counters and writes them for the node
// exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "uaestocks"

// Metrics is the set of collectors of one command run.
type Metrics struct {
	Registry *prometheus.Registry

	QuotesFetched     *prometheus.CounterVec
	NullFields        *prometheus.CounterVec
	LastFetchSuccess  prometheus.Gauge
	PagesRendered     prometheus.Counter
	StaticFilesCopied prometheus.Counter
	RunDuration       *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		QuotesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "quotes_total",
			Help:      "Quotes merged into the snapshot, by source.",
		}, []string{"source"}),
		NullFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "null_fields_total",
			Help:      "Quote fields a source reported as null, by source.",
		}, []string{"source"}),
		LastFetchSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the quote snapshot was last written.",
		}),
		PagesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "pages_total",
			Help:      "HTML pages written.",
		}),
		StaticFilesCopied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "static_files_total",
			Help:      "Static asset files copied.",
		}),
		RunDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run, by command.",
		}, []string{"command"}),
	}
	m.Registry.MustRegister(
		m.QuotesFetched,
		m.NullFields,
		m.LastFetchSuccess,
		m.PagesRendered,
		m.StaticFilesCopied,
		m.RunDuration,
	)
	return m
}

// ObserveRun records the duration of command since start.
func (m *Metrics) ObserveRun(command string, start time.Time) {
	m.RunDuration.WithLabelValues(command).Set(time.Since(start).Seconds())
}

// WriteTextfile writes the registry to path. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
