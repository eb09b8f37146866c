// Package metrics holds the Prometheus collectors for the ingestion pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nitesh/trends_service/pkg/models"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

type Metrics struct {
	fetches         *prometheus.CounterVec
	persists        *prometheus.CounterVec
	recordsPersist  *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trends_fetch_total",
				Help: "Upstream trend fetches by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		persists: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trends_persist_total",
				Help: "Batch inserts into the trends table by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		recordsPersist: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trends_records_persisted_total",
				Help: "Trend records successfully inserted",
			},
			[]string{"source"},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) ObserveFetch(source models.Source, err error) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(source.String(), outcome(err)).Inc()
}

func (m *Metrics) ObservePersist(source models.Source, records int, err error) {
	if m == nil {
		return
	}
	m.persists.WithLabelValues(source.String(), outcome(err)).Inc()
	if err == nil {
		m.recordsPersist.WithLabelValues(source.String()).Add(float64(records))
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}
