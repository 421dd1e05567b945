package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultSystemPrompt is used when no persona is configured for the
// conversation.
const DefaultSystemPrompt = "Você é um assistente prestativo."

// Fixed sampling parameters for the chat-completion call.
const (
	completionModel       = "deepseek-chat"
	completionMaxTokens   = 150
	completionTemperature = 0.7
)

// CompletionClient produces a reply for a user message under a system prompt.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

// DeepSeekClient calls the DeepSeek chat-completions endpoint.
type DeepSeekClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewDeepSeekClient(apiKey, apiURL string) *DeepSeekClient {
	return &DeepSeekClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a non-streaming completion request. A non-2xx upstream
// response becomes the reply text instead of an error, matching the legacy
// relay; that conflates transport failures with conversational content and is
// kept deliberately (see DESIGN.md).
func (c *DeepSeekClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	payload := completionRequest{
		Model: completionModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Erro na API: %d - %s", resp.StatusCode, respBody), nil
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
