// Package mock provides a mock completion gateway for testing and for
// running the service locally without API credentials.
package mock

import (
	"context"
	"fmt"

	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/service/complete"
)

// ModelID is the model identifier the mock echoes back.
const ModelID = "mock-llm"

// Gateway implements complete.Gateway with a deterministic reply.
type Gateway struct{}

// New creates a mock completion gateway.
func New() *Gateway {
	return &Gateway{}
}

// Complete echoes the prompt in a canned reply.
func (g *Gateway) Complete(_ context.Context, prompt string) (complete.Result, error) {
	return complete.Result{
		Text:  fmt.Sprintf("You said: %s", prompt),
		Model: ModelID,
		Usage: models.Usage{
			PromptTokens:     len(prompt) / 4,
			CompletionTokens: 12,
			TotalTokens:      len(prompt)/4 + 12,
		},
	}, nil
}
