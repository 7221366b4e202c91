package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncBaseTaxCreated()
	m.IncRegistration("create")
	m.IncRegistration("create")
	m.IncRegistration("delete")
	m.IncLoginFailure()
	m.IncLoginLockout()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BaseTaxCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationOps.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationOps.WithLabelValues("delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginLockouts))
}

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTPRequest("GET", "/health", "200", time.Now())
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncBaseTaxCreated()
		m.IncRegistration("create")
		m.IncLoginFailure()
		m.IncLoginLockout()
		m.ObserveHTTPRequest("GET", "/", "200", time.Now())
	})
}
