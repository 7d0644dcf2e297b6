package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObservePosting("deposit")
	m.ObservePosting("deposit")
	m.ObservePostingFailure("insufficient_funds")
	m.ObserveDistribution(1234.5)
	m.ObserveTxRetry()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PostingsTotal.WithLabelValues("deposit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PostingFailuresTotal.WithLabelValues("insufficient_funds")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DistributionsTotal))
	assert.Equal(t, 1234.5, testutil.ToFloat64(m.DistributedAmountTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TxRetriesTotal))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePosting("deposit")
		m.ObservePostingFailure("x")
		m.ObserveWithdrawalRequest("pending")
		m.ObserveDistribution(1)
		m.ObserveSideEffectFailure("receipt")
		m.ObserveTxRetry()
		m.ObserveHTTPRequest("GET", "/", "200", 0.1)
	})
}
