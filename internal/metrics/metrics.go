// Package metrics defines the Prometheus collectors of the REST client.
// Consumers obtain a *Metrics instance via NewMetrics() and hand it to the
// transport and the poll engine.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "reapi"
)

// OutcomeOK labels a request or stream item that carried no error.
const OutcomeOK = "ok"

// Metrics holds all Prometheus metric collectors for the client.
type Metrics struct {
	// RequestsTotal counts finished requests, partitioned by method and
	// outcome ("ok" or the error kind).
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency in seconds, partitioned by
	// method.
	RequestDuration *prometheus.HistogramVec

	// StreamItemsTotal counts items yielded by poll streams, partitioned by
	// policy and outcome.
	StreamItemsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors with
// the provided prometheus.Registerer. Collectors already registered by an
// earlier client are shared. A nil registerer returns nil, which every method
// treats as disabled.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of REST API requests.",
			},
			[]string{"method", "outcome"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Latency of REST API requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		StreamItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_items_total",
				Help:      "Total number of items yielded by poll streams.",
			},
			[]string{"policy", "outcome"},
		),
	}

	var err error

	if m.RequestsTotal, err = register(reg, m.RequestsTotal); err != nil {
		return nil, err
	}

	if m.RequestDuration, err = register(reg, m.RequestDuration); err != nil {
		return nil, err
	}

	if m.StreamItemsTotal, err = register(reg, m.StreamItemsTotal); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds collector to reg, or returns the identical collector that is
// already registered there.
func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var registered prometheus.AlreadyRegisteredError
	if errors.As(err, &registered) {
		if existing, ok := registered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	var zero C

	return zero, fmt.Errorf("registering metrics: %w", err)
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.RequestsTotal.WithLabelValues(method, outcome).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveStreamItem records one item yielded by a poll stream.
func (m *Metrics) ObserveStreamItem(policy, outcome string) {
	if m == nil {
		return
	}

	m.StreamItemsTotal.WithLabelValues(policy, outcome).Inc()
}
