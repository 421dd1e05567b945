package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/zapagente/zapagente/internal/relay"
)

// Handler processes queued relay tasks.
type Handler struct {
	relay  *relay.Service
	logger *slog.Logger
}

func NewHandler(relayService *relay.Service, logger *slog.Logger) *Handler {
	return &Handler{relay: relayService, logger: logger}
}

// RegisterHandlers registers all task handlers on the mux.
func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeInboundRelay, h.HandleInboundRelay)
}

// HandleInboundRelay performs the relay for a queued webhook delivery. A
// malformed payload or an invalid message is dropped, not retried; transport
// failures are returned so asynq retries them.
func (h *Handler) HandleInboundRelay(ctx context.Context, t *asynq.Task) error {
	var payload InboundRelayPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("invalid relay payload", "error", err)
		return fmt.Errorf("unmarshaling payload: %w: %w", err, asynq.SkipRetry)
	}

	outcome, err := h.relay.HandleInbound(ctx, relay.Inbound{
		From: payload.From,
		To:   payload.To,
		Body: payload.Body,
	})
	if err != nil {
		if errors.Is(err, relay.ErrMissingPayload) {
			h.logger.Warn("dropping relay task with missing payload", "from", payload.From)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		h.logger.Error("relay failed", "from", payload.From, "error", err)
		return err
	}

	h.logger.Info("relayed message",
		"from", payload.From,
		"reply_len", len(outcome.Reply),
	)

	return nil
}
