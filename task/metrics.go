package task

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ericlevine/barcodegen"
)

type metrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// WithRegisterer records render metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *poolConfig) { c.metrics = newMetrics(reg) }
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "barcodegen_renders_total",
				Help: "Total number of barcode renders",
			},
			[]string{"symbology", "status"}, // status: ok, empty, incompatible, internal
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "barcodegen_render_duration_seconds",
				Help:    "Barcode render duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"symbology"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "barcodegen_renders_in_flight",
				Help: "Number of renders currently running",
			},
		),
	}
	reg.MustRegister(m.renders, m.duration, m.inFlight)
	return m
}

func (m *metrics) start() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *metrics) finish(code barcodegen.FormatCode, res barcodegen.Result, d time.Duration) {
	if m == nil {
		return
	}
	sym := barcodegen.Resolve(code).String()
	m.inFlight.Dec()
	m.renders.WithLabelValues(sym, status(res.Err)).Inc()
	m.duration.WithLabelValues(sym).Observe(d.Seconds())
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, barcodegen.ErrEmptyPayload):
		return "empty"
	case errors.Is(err, barcodegen.ErrIncompatible):
		return "incompatible"
	default:
		return "internal"
	}
}
