package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	r.RecordChart("model")
	r.RecordChart("model")
	r.RecordChart("cache")
	r.RecordError("request_failed")
	r.RecordBreakerState("gemini", 2)
	r.RecordLatency("generate", 0.4)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.chartsTotal.WithLabelValues("model")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chartsTotal.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("request_failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.breakerState.WithLabelValues("gemini")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}
