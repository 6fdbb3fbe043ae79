package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/auth/login", "POST", 200, 5*time.Millisecond)
	m.RecordError("/auth/me", "GET", "REVOKED")
	m.RecordAuth("REVOKED")
	m.RecordAuth("REVOKED")

	require.Equal(t, int64(2), m.AuthCount("REVOKED"))
	require.Equal(t, int64(0), m.AuthCount("SESSION_EXPIRED"))
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/p", "GET", 200, time.Millisecond)
	m.RecordError("/p", "GET", "X")
	m.RecordAuth("X")
	require.Equal(t, int64(0), m.AuthCount("X"))
}
