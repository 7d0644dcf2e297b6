// Package metrics holds the Prometheus collectors of the back-office.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coop"

// Metrics groups every collector registered by the application.
type Metrics struct {
	Registry *prometheus.Registry

	PostingsTotal           *prometheus.CounterVec
	PostingFailuresTotal    *prometheus.CounterVec
	WithdrawalRequestsTotal *prometheus.CounterVec
	DistributionsTotal      prometheus.Counter
	DistributedAmountTotal  prometheus.Counter
	SideEffectFailuresTotal *prometheus.CounterVec
	TxRetriesTotal          prometheus.Counter
	HTTPRequestDuration     *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(reg)
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		PostingsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "postings_total",
			Help:      "Completed ledger postings by transaction type.",
		}, []string{"type"}),
		PostingFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "posting_failures_total",
			Help:      "Rejected or failed ledger postings by reason.",
		}, []string{"reason"}),
		WithdrawalRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "withdrawals",
			Name:      "requests_total",
			Help:      "Withdrawal requests by resulting status.",
		}, []string{"status"}),
		DistributionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "surplus",
			Name:      "distributions_total",
			Help:      "Executed surplus distributions.",
		}),
		DistributedAmountTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "surplus",
			Name:      "distributed_amount_total",
			Help:      "Sum of surplus posted to member accounts.",
		}),
		SideEffectFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "side_effects",
			Name:      "failures_total",
			Help:      "Failed post-commit side effects by task.",
		}, []string{"task"}),
		TxRetriesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "tx_retries_total",
			Help:      "Units of work retried after a serialization failure or deadlock.",
		}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObservePosting(txType string) {
	if m == nil {
		return
	}
	m.PostingsTotal.WithLabelValues(txType).Inc()
}

func (m *Metrics) ObservePostingFailure(reason string) {
	if m == nil {
		return
	}
	m.PostingFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveWithdrawalRequest(status string) {
	if m == nil {
		return
	}
	m.WithdrawalRequestsTotal.WithLabelValues(status).Inc()
}

// ObserveDistribution records an executed distribution and the amount it posted.
func (m *Metrics) ObserveDistribution(distributed float64) {
	if m == nil {
		return
	}
	m.DistributionsTotal.Inc()
	m.DistributedAmountTotal.Add(distributed)
}

func (m *Metrics) ObserveSideEffectFailure(task string) {
	if m == nil {
		return
	}
	m.SideEffectFailuresTotal.WithLabelValues(task).Inc()
}

func (m *Metrics) ObserveTxRetry() {
	if m == nil {
		return
	}
	m.TxRetriesTotal.Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
