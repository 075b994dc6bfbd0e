// Package mock provides a mock transcription gateway for testing and for
// running the service locally without API credentials. Transcripts cycle
// through a fixed set of sample utterances.
package mock

import (
	"context"
	"sync"

	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/service/transcribe"
)

// DefaultTranscripts provides sample transcripts for simulation.
var DefaultTranscripts = []string{
	"I want to cancel my subscription",
	"Can you help me with my account",
	"What is the weather like today",
	"Thank you very much",
}

// Gateway implements transcribe.Gateway with canned transcripts.
type Gateway struct {
	mu      sync.Mutex
	counter int
	// Fixed, when non-empty, is returned for every call instead of cycling.
	Fixed string
}

// New creates a mock transcription gateway.
func New() *Gateway {
	return &Gateway{}
}

// Transcribe returns the next canned transcript.
func (g *Gateway) Transcribe(_ context.Context, _ models.AudioPayload, _ string) (transcribe.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Fixed != "" {
		return transcribe.Result{Text: g.Fixed}, nil
	}
	text := DefaultTranscripts[g.counter%len(DefaultTranscripts)]
	g.counter++
	return transcribe.Result{Text: text}, nil
}
