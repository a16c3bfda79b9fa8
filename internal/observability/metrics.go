package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for dataset loading and chart rendering.
type Metrics struct {
	DatasetLoads   *prometheus.CounterVec // labels: outcome={success,error}
	LoadDuration   prometheus.Histogram
	DatasetPoints  prometheus.Gauge
	RenderDuration *prometheus.HistogramVec // labels: format={svg,html}
	CellsRendered  prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a dataset load including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		DatasetPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "dataset_points",
			Help:      "Number of monthly observations in the latest dataset.",
		}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "render_duration_seconds",
			Help:      "Chart render duration by output format.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"format"}),
		CellsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "cells_rendered_total",
			Help:      "Heatmap cells written across all renders.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetLoads,
		m.LoadDuration,
		m.DatasetPoints,
		m.RenderDuration,
		m.CellsRendered,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
