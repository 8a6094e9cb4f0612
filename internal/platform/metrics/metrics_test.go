package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncRoleMutation("add", "ok")
	m.IncRoleMutation("add", "ok")
	m.IncRoleMutation("add", "permission_denied")
	m.ObserveReconcile("completed", 3, 2, 2*time.Second)
	m.IncBulkLockRejected()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoleMutations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoleMutations.WithLabelValues("add", "permission_denied")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ReconcileLines.WithLabelValues("matched")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReconcileLines.WithLabelValues("unmatched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileRuns.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BulkLockRejected))
}

func TestNewOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
