package metrics

import (
	"time"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// PromRecorder records optimisation runs in Prometheus metrics.
type PromRecorder struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	unmet    prometheus.Gauge
}

// NewPromRecorder registers run metrics on the default Prometheus registerer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "heat_optimizer_runs_total",
		Help: "Total number of completed optimisation runs",
	}, []string{"profile", "criterion", "scenario"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "heat_optimizer_run_duration_seconds",
		Help:    "Wall time of an optimisation run",
		Buckets: prometheus.DefBuckets,
	}, []string{"profile", "criterion", "scenario"})
	unmet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heat_optimizer_unmet_heat_mwh",
		Help: "Heat demand left unserved by the last run",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(unmet); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			unmet = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromRecorder{runs: runs, duration: duration, unmet: unmet}, nil
}

func (r *PromRecorder) ObserveRun(s model.RunSettings, elapsed time.Duration, summary analysis.Summary) {
	labels := []string{string(s.Profile), string(s.Criterion), string(s.Scenario)}
	r.runs.WithLabelValues(labels...).Inc()
	r.duration.WithLabelValues(labels...).Observe(elapsed.Seconds())
	r.unmet.Set(summary.UnmetHeat)
}
