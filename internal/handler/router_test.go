package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netventas/visitbot/internal/dedup"
	"github.com/netventas/visitbot/internal/handler"
	"github.com/netventas/visitbot/internal/model/visit"
	"github.com/netventas/visitbot/internal/service/session"
)

type echoProcessor struct{}

func (echoProcessor) ProcessMessage(_ context.Context, phone, text string) string {
	return "echo: " + text
}

func setup(t *testing.T) (http.Handler, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)
	router := handler.NewRouter(echoProcessor{}, store, dedup.Noop{}, "", "", nil)
	return router, store
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "Sales Visit Chatbot", payload["service"])
	assert.NotEmpty(t, payload["timestamp"])
}

func TestSessionsEndpoint(t *testing.T) {
	router, store := setup(t)

	sess, release := store.Acquire("+5930001")
	sess.State = visit.StateCedula
	sess.Data[visit.FieldNombre] = "Juan Perez"
	release()

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		ActiveSessions int `json:"active_sessions"`
		Sessions       []struct {
			Phone string `json:"phone"`
			State string `json:"state"`
		} `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.ActiveSessions)
	require.Len(t, payload.Sessions, 1)
	assert.Equal(t, "+5930001", payload.Sessions[0].Phone)
	assert.Equal(t, string(visit.StateCedula), payload.Sessions[0].State)

	// Collected answers never leave the process.
	assert.NotContains(t, resp.Body.String(), "Juan Perez")
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestWebhookRouted(t *testing.T) {
	router, _ := setup(t)

	form := url.Values{
		"Body": {"hola"},
		"From": {"whatsapp:+5930001"},
	}
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "echo: hola")
}
