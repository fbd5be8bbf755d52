// Package metrics exposes Prometheus collectors for document conversions.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the conversion collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Conversions *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler, or a fresh registry in tests.
// Collectors already registered on reg by an earlier New are reused, so
// several instances can share one registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	conversions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dokufy_conversions_total",
			Help: "Total number of document conversions by driver, operation and status",
		},
		[]string{"driver", "operation", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dokufy_conversion_duration_seconds",
			Help:    "Duration of document conversions in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"driver", "operation"},
	)

	m := &Metrics{}
	var err error
	if m.Conversions, err = register(reg, conversions); err != nil {
		return nil, err
	}
	if m.Duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, returning the collector reg already holds when an
// identical one was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, fmt.Errorf("registering metrics: %w", err)
}

// Observe records one conversion outcome.
func (m *Metrics) Observe(driver, operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.Conversions.WithLabelValues(driver, operation, status).Inc()
	m.Duration.WithLabelValues(driver, operation).Observe(time.Since(started).Seconds())
}
