package webdispatch

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "webdispatch"
	unknownAction    = "unknown"
)

// Dispatch outcomes recorded by Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors fed by WithMetrics.
type Metrics struct {
	Dispatches *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Missing    prometheus.Counter
	Halts      *prometheus.CounterVec
}

// NewMetrics creates the dispatch collectors and registers them with reg.
// A collector that is already registered is reused, so several factories
// may share one registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_total",
			Help:      "Dispatched requests by controller, action and outcome.",
		}, []string{"controller", "action", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent in the handler lifecycle.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"controller"}),
		Missing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "missing_handler_total",
			Help:      "Requests that did not resolve to a handler.",
		}),
		Halts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "halt_total",
			Help:      "Lifecycles ended early by a hook, by phase.",
		}, []string{"phase"}),
	}

	var err error
	if m.Dispatches, err = register(reg, m.Dispatches); err != nil {
		return nil, err
	}
	if m.Duration, err = register(reg, m.Duration); err != nil {
		return nil, err
	}
	if m.Missing, err = register(reg, m.Missing); err != nil {
		return nil, err
	}
	if m.Halts, err = register(reg, m.Halts); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// WithMetrics feeds m from the factory's hooks.
//
// Example:
//
//	m, err := webdispatch.NewMetrics(prometheus.DefaultRegisterer)
//	if err != nil {
//	    return err
//	}
//	f := webdispatch.New(reg, webdispatch.WithMetrics(m))
func WithMetrics(m *Metrics) Option {
	return func(f *Factory) {
		if m == nil {
			return
		}
		f.hooks.onMissing = append(f.hooks.onMissing, func(context.Context, *MissingHandlerError) {
			m.Missing.Inc()
		})
		f.hooks.onHalt = append(f.hooks.onHalt, func(_ context.Context, _ string, phase Phase) {
			m.Halts.WithLabelValues(phase.String()).Inc()
		})
		f.hooks.onSuccess = append(f.hooks.onSuccess, func(_ context.Context, controller, action string, d time.Duration) {
			m.Dispatches.WithLabelValues(controller, action, OutcomeSuccess).Inc()
			m.Duration.WithLabelValues(controller).Observe(d.Seconds())
		})
		f.hooks.onFailure = append(f.hooks.onFailure, func(_ context.Context, controller, action string, err error, d time.Duration) {
			// Unknown action names come straight from the request.
			if errors.Is(err, ErrMissingAction) {
				action = unknownAction
			}
			m.Dispatches.WithLabelValues(controller, action, OutcomeFailure).Inc()
			m.Duration.WithLabelValues(controller).Observe(d.Seconds())
		})
	}
}
