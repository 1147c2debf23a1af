package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	assert.NotPanics(t, func() {
		Register(reg)
		Register(reg)
	})
}

func TestCacheCounters(t *testing.T) {
	before := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("test", ResultHit))
	CacheRequestsTotal.WithLabelValues("test", ResultHit).Inc()
	after := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("test", ResultHit))

	require.InDelta(t, before+1, after, 0.0001)
}
