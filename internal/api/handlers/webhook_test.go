package handlers_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapagente/zapagente/internal/api/handlers"
	"github.com/zapagente/zapagente/internal/relay"
	"github.com/zapagente/zapagente/internal/testutil"
)

type webhookCompletion struct {
	err   error
	calls int
}

func (c *webhookCompletion) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "resposta automática", nil
}

type webhookMessaging struct {
	err   error
	calls int
}

func (m *webhookMessaging) Send(ctx context.Context, to, body string) error {
	m.calls++
	return m.err
}

func setupWebhookRouter(t *testing.T, completion relay.CompletionClient, messaging relay.MessagingClient) *chi.Mux {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	relayService := relay.NewService(db, completion, messaging, nil, nil, slog.Default())
	handler := handlers.NewWebhookHandler(relayService, nil, slog.Default())

	r := chi.NewRouter()
	r.Post("/webhook", handler.Receive)
	return r
}

func postWebhook(t *testing.T, router *chi.Mux, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestWebhookHandler_Receive(t *testing.T) {
	t.Run("processes inbound message inline", func(t *testing.T) {
		completion := &webhookCompletion{}
		messaging := &webhookMessaging{}
		router := setupWebhookRouter(t, completion, messaging)

		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:+5511987654321"},
			"To":   {"whatsapp:+14155238886"},
			"Body": {"Olá"},
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, completion.calls)
		assert.Equal(t, 1, messaging.calls)

		var resp map[string]string
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "success", resp["status"])
		assert.Equal(t, "Message processed", resp["message"])
	})

	t.Run("missing body rejected before any call", func(t *testing.T) {
		completion := &webhookCompletion{}
		messaging := &webhookMessaging{}
		router := setupWebhookRouter(t, completion, messaging)

		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:+5511987654321"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, completion.calls)
		assert.Zero(t, messaging.calls)

		var resp map[string]string
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "error", resp["status"])
		assert.Equal(t, "Missing message or sender", resp["message"])
	})

	t.Run("missing sender rejected before any call", func(t *testing.T) {
		completion := &webhookCompletion{}
		router := setupWebhookRouter(t, completion, &webhookMessaging{})

		rr := postWebhook(t, router, url.Values{
			"Body": {"Olá"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, completion.calls)
	})

	t.Run("prefix-only sender rejected before any call", func(t *testing.T) {
		completion := &webhookCompletion{}
		messaging := &webhookMessaging{}
		router := setupWebhookRouter(t, completion, messaging)

		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:"},
			"Body": {"Olá"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, completion.calls)
		assert.Zero(t, messaging.calls)

		var resp map[string]string
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Missing message or sender", resp["message"])
	})

	t.Run("missing credentials answer 500", func(t *testing.T) {
		router := setupWebhookRouter(t, nil, nil)

		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:+5511987654321"},
			"Body": {"Olá"},
		})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp map[string]string
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Credenciais não configuradas", resp["message"])
	})

	t.Run("relay failure answers 500", func(t *testing.T) {
		router := setupWebhookRouter(t, &webhookCompletion{err: errors.New("timeout")}, &webhookMessaging{})

		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:+5511987654321"},
			"Body": {"Olá"},
		})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp map[string]string
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Erro ao processar mensagem", resp["message"])
	})

	t.Run("send failure answers 500", func(t *testing.T) {
		router := setupWebhookRouter(t, &webhookCompletion{}, &webhookMessaging{err: errors.New("unreachable")})

		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:+5511987654321"},
			"Body": {"Olá"},
		})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("no session required", func(t *testing.T) {
		router := setupWebhookRouter(t, &webhookCompletion{}, &webhookMessaging{})

		// No cookie, no Authorization header
		rr := postWebhook(t, router, url.Values{
			"From": {"whatsapp:+5511987654321"},
			"Body": {"Olá"},
		})

		require.Equal(t, http.StatusOK, rr.Code)
	})
}
