package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/zapagente/zapagente/internal/relay"
	"github.com/zapagente/zapagente/internal/tasks"
)

// WebhookHandler receives inbound WhatsApp deliveries from the messaging
// provider. The provider authenticates itself out of band; the route carries
// no session.
type WebhookHandler struct {
	relayService *relay.Service
	asynqClient  *asynq.Client
	logger       *slog.Logger
}

// NewWebhookHandler builds the webhook endpoint. asynqClient may be nil;
// deliveries are then relayed inline in the request, which is the legacy
// behavior.
func NewWebhookHandler(relayService *relay.Service, asynqClient *asynq.Client, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		relayService: relayService,
		asynqClient:  asynqClient,
		logger:       logger,
	}
}

type webhookResponse struct {
	Status   string `json:"status"`
	Mensagem string `json:"message"`
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, webhookResponse{Status: "error", Mensagem: "Invalid form body"})
		return
	}

	in := relay.Inbound{
		From: r.PostFormValue("From"),
		To:   r.PostFormValue("To"),
		Body: r.PostFormValue("Body"),
	}

	// Validated before any side effect, on both the inline and queued paths.
	// A prefix-only sender is as empty as a missing one.
	if in.Body == "" || strings.TrimPrefix(in.From, relay.WhatsAppPrefix) == "" {
		writeJSON(w, http.StatusBadRequest, webhookResponse{Status: "error", Mensagem: "Missing message or sender"})
		return
	}

	if h.asynqClient != nil {
		task, err := tasks.NewInboundRelayTask(tasks.InboundRelayPayload{
			From: in.From,
			To:   in.To,
			Body: in.Body,
		})
		if err == nil {
			if _, err := h.asynqClient.Enqueue(task); err == nil {
				writeJSON(w, http.StatusOK, webhookResponse{Status: "success", Mensagem: "Message queued"})
				return
			}
			h.logger.Warn("failed to enqueue relay, falling back to inline", "error", err)
		}
	}

	if _, err := h.relayService.HandleInbound(r.Context(), in); err != nil {
		switch {
		case errors.Is(err, relay.ErrMissingPayload):
			writeJSON(w, http.StatusBadRequest, webhookResponse{Status: "error", Mensagem: "Missing message or sender"})
		case errors.Is(err, relay.ErrConfigMissing):
			writeJSON(w, http.StatusInternalServerError, webhookResponse{Status: "error", Mensagem: "Credenciais não configuradas"})
		default:
			h.logger.Error("relay failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, webhookResponse{Status: "error", Mensagem: "Erro ao processar mensagem"})
		}
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{Status: "success", Mensagem: "Message processed"})
}
