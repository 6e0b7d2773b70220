package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	require.NotNil(t, m)
	require.NotNil(t, m.Registry())
	assert.NotNil(t, m.UpdatesReceivedTotal)
	assert.NotNil(t, m.UpdatesRejectedTotal)
	assert.NotNil(t, m.DispatchesTotal)
	assert.NotNil(t, m.HandlerErrorsTotal)
	assert.NotNil(t, m.MessagesSentTotal)
	assert.NotNil(t, m.SendRetriesTotal)
	assert.NotNil(t, m.BroadcastsTotal)
	assert.NotNil(t, m.AIRequestsTotal)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.CacheMissesTotal)
}

func TestMetricsHandlerServesCounters(t *testing.T) {
	m := NewMetrics()

	m.UpdatesReceivedTotal.Inc()
	m.DispatchesTotal.WithLabelValues("dispatched").Inc()
	m.AIRequestsTotal.WithLabelValues("ok").Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "webhook_updates_received_total")
	assert.Contains(t, body, `dispatches_total{outcome="dispatched"}`)
	assert.Contains(t, body, `ai_requests_total{status="ok"}`)
}
