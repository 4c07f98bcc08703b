package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestRecordDBPool(t *testing.T) {
	RecordDBPool("primary", 10, 7, 3)

	assert.Equal(t, 10.0, gaugeValue(t, DBPoolConnections.WithLabelValues("primary", "total")))
	assert.Equal(t, 7.0, gaugeValue(t, DBPoolConnections.WithLabelValues("primary", "idle")))
	assert.Equal(t, 3.0, gaugeValue(t, DBPoolConnections.WithLabelValues("primary", "acquired")))
}

func TestRecordRedisPool(t *testing.T) {
	RecordRedisPool(4, 1)

	assert.Equal(t, 4.0, gaugeValue(t, RedisPoolConnections.WithLabelValues("total")))
	assert.Equal(t, 1.0, gaugeValue(t, RedisPoolConnections.WithLabelValues("idle")))
}
