package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeInboundRelay = "relay:inbound"
)

// InboundRelayPayload contains one webhook delivery to relay.
type InboundRelayPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func NewInboundRelayTask(payload InboundRelayPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInboundRelay, data), nil
}
