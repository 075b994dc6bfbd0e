// Package complete defines the interface for LLM completion gateways.
package complete

import (
	"context"

	"ai-voice-chat-service/internal/models"
)

// Result is a normalized completion outcome. Model is the identifier the
// remote service actually used, which may differ from the requested one.
type Result struct {
	Text  string
	Model string
	Usage models.Usage
}

// Gateway adapts an external completion API. Callers guarantee a
// non-empty prompt; implementations perform exactly one outbound call
// with no retries and never let an un-classified failure escape.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (Result, error)
}
