// Package transcribe defines the interface for speech-to-text gateways.
package transcribe

import (
	"context"

	"ai-voice-chat-service/internal/models"
)

// Result is a normalized transcription outcome.
type Result struct {
	Text string
}

// Gateway adapts an external speech-to-text API. Implementations are
// stateless across calls: identical input produces an identical
// normalized result, and failures never escape un-classified.
type Gateway interface {
	// Transcribe performs exactly one outbound call with the buffered
	// audio. No retries.
	Transcribe(ctx context.Context, payload models.AudioPayload, model string) (Result, error)
}
