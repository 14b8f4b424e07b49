package cubesim

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records what the simulation runs did.
type Metrics struct {
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	samplesTotal    prometheus.Counter
	eclipseFraction prometheus.Gauge
	minSoC          prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cubesim_runs_total",
				Help: "Total number of simulation runs by outcome.",
			},
			[]string{"outcome"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cubesim_run_duration_seconds",
				Help:    "Wall time of a simulation run in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		samplesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cubesim_samples_total",
				Help: "Total number of simulated time steps.",
			},
		),
		eclipseFraction: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cubesim_last_eclipse_fraction",
				Help: "Fraction of samples in shadow during the last successful run.",
			},
		),
		minSoC: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cubesim_last_min_soc_wh",
				Help: "Minimum battery state of charge in Wh during the last successful run.",
			},
		),
	}
	reg.MustRegister(m.runsTotal, m.runDuration, m.samplesTotal, m.eclipseFraction, m.minSoC)
	return m
}

// Observe records a finished run. A nil receiver records nothing.
func (m *Metrics) Observe(r *Result, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.runsTotal.WithLabelValues(outcome(err)).Inc()
		return
	}
	m.runsTotal.WithLabelValues("ok").Inc()
	m.samplesTotal.Add(float64(r.Len()))
	m.eclipseFraction.Set(r.Report.EclipseFraction)
	m.minSoC.Set(r.Report.MinSoC)
}

func outcome(err error) string {
	var invalid *InvalidParameterError
	var eph *EphemerisUnavailableError
	switch {
	case errors.As(err, &invalid):
		return "invalid_parameter"
	case errors.As(err, &eph):
		return "ephemeris_unavailable"
	default:
		return "error"
	}
}
