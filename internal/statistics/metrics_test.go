package statistics

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteParseResult(t *testing.T) {
	parsed := testutil.ToFloat64(UreplayMetrics.ParsedReplaysTotal)
	failed := testutil.ToFloat64(UreplayMetrics.FailedReplaysTotal)

	WriteParseResult(1500*time.Millisecond, nil)
	WriteParseResult(time.Second, errors.New("bad magic"))

	assert.Equal(t, parsed+1, testutil.ToFloat64(UreplayMetrics.ParsedReplaysTotal))
	assert.Equal(t, failed+1, testutil.ToFloat64(UreplayMetrics.FailedReplaysTotal))
	assert.Equal(t, float64(1500), testutil.ToFloat64(UreplayMetrics.LastParseDurationMillis))
}

func TestPushMetrics_SendsCountersWithTags(t *testing.T) {
	listener, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	registry := prometheus.NewRegistry()
	events := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ureplay_test_events_total"}, []string{"group"})
	registry.MustRegister(events)
	events.WithLabelValues("playerElim").Add(3)

	err = pushMetrics(listener.LocalAddr().String(), map[string]string{"host": "test"}, registry)
	require.NoError(t, err)

	require.NoError(t, listener.SetReadDeadline(time.Now().Add(5*time.Second)))
	buffer := make([]byte, 1024)
	n, _, err := listener.ReadFrom(buffer)
	require.NoError(t, err)

	line := string(buffer[:n])
	assert.True(t, strings.HasPrefix(line, "ureplay_test_events_total"), line)
	assert.Contains(t, line, "group=playerElim")
	assert.Contains(t, line, "host=test")
	assert.Contains(t, line, ":3|c")
}

func TestPushMetrics_RejectsHistograms(t *testing.T) {
	listener, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	registry := prometheus.NewRegistry()
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "ureplay_test_seconds"})
	registry.MustRegister(histogram)
	histogram.Observe(1)

	err = pushMetrics(listener.LocalAddr().String(), nil, registry)
	assert.Error(t, err)
}
