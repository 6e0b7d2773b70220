package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/service"
	"sotorbot/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type mockDispatcher struct {
	updates chan *domain.Update
}

func (m *mockDispatcher) Dispatch(_ context.Context, update *domain.Update) service.Outcome {
	m.updates <- update
	return service.OutcomeDispatched
}

func newTestServer(t *testing.T) (*httptest.Server, *mockDispatcher) {
	t.Helper()

	dispatcher := &mockDispatcher{updates: make(chan *domain.Update, 8)}
	s := NewServer(ServerConfig{
		Addr:       ":0",
		Secret:     testSecret,
		Dispatcher: dispatcher,
		Metrics:    metrics.NewMetrics(),
	})

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return srv, dispatcher
}

func postUpdate(t *testing.T, srv *httptest.Server, secret string, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/telegram", strings.NewReader(body))
	require.NoError(t, err)
	if secret != "" {
		req.Header.Set(secretTokenHeader, secret)
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })

	return res
}

func awaitDispatch(t *testing.T, dispatcher *mockDispatcher) *domain.Update {
	t.Helper()

	select {
	case update := <-dispatcher.updates:
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher was not invoked")
		return nil
	}
}

func assertNoDispatch(t *testing.T, dispatcher *mockDispatcher) {
	t.Helper()

	select {
	case update := <-dispatcher.updates:
		t.Fatalf("unexpected dispatch of update %d", update.ID)
	case <-time.After(100 * time.Millisecond):
	}
}

const validUpdateBody = `{
	"update_id": 31337,
	"message": {
		"message_id": 7,
		"from": {"id": 42, "first_name": "أحمد"},
		"chat": {"id": 42, "type": "private"},
		"date": 1723717200,
		"text": "/start"
	}
}`

func TestWebhookAcceptsAuthenticUpdate(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	res := postUpdate(t, srv, testSecret, validUpdateBody)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(body))

	update := awaitDispatch(t, dispatcher)
	assert.Equal(t, int64(31337), update.ID)
	require.NotNil(t, update.Message)
	assert.Equal(t, "/start", update.Message.Text)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	res := postUpdate(t, srv, "wrong-secret", validUpdateBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assertNoDispatch(t, dispatcher)
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	res := postUpdate(t, srv, "", validUpdateBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assertNoDispatch(t, dispatcher)
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	res := postUpdate(t, srv, testSecret, `{"update_id": `)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assertNoDispatch(t, dispatcher)
}

func TestWebhookRejectsUpdateWithoutID(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	res := postUpdate(t, srv, testSecret, `{}`)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assertNoDispatch(t, dispatcher)
}

func TestWebhookAcksUnsupportedKind(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	res := postUpdate(t, srv, testSecret,
		`{"update_id": 8, "edited_message": {"message_id": 1, "chat": {"id": 2, "type": "private"}, "date": 1723717200, "text": "x"}}`)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	update := awaitDispatch(t, dispatcher)
	assert.Nil(t, update.Message)
	assert.Nil(t, update.Callback)
}

func TestWebhookIgnoresGet(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := srv.Client().Get(srv.URL + "/telegram")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestRadioPageServed(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := srv.Client().Get(srv.URL + "/radio")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<!DOCTYPE html>")
	assert.Contains(t, string(body), "راديو")
}

func TestStatusPage(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "running")
	assert.Contains(t, string(body), domain.BotName)
}

func TestPingAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/ping", "/health"} {
		res, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, dispatcher := newTestServer(t)

	// generate some traffic first
	res := postUpdate(t, srv, testSecret, validUpdateBody)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	awaitDispatch(t, dispatcher)

	metricsRes, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsRes.Body.Close()

	assert.Equal(t, http.StatusOK, metricsRes.StatusCode)

	body, err := io.ReadAll(metricsRes.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "webhook_updates_received_total")
}
