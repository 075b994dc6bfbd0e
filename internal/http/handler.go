// Package http provides the HTTP handlers that orchestrate the
// ingest → transcribe → complete pipeline and the service router.
package http

import (
	"github.com/rs/zerolog"

	"ai-voice-chat-service/internal/events"
	"ai-voice-chat-service/internal/ingest"
	"ai-voice-chat-service/internal/observability/metrics"
	"ai-voice-chat-service/internal/pipeline"
	"ai-voice-chat-service/internal/service/complete"
	"ai-voice-chat-service/internal/service/transcribe"
)

// Handler orchestrates the chat and audio flows. Gateways are injected
// so tests can substitute stubs.
type Handler struct {
	transcriber transcribe.Gateway
	completer   complete.Gateway
	publisher   *events.Publisher
	ids         *pipeline.Generator
	limits      ingest.Limits
	sttModel    string // default transcription model, overridable per request
	metrics     *metrics.Metrics
}

// advance moves the lifecycle forward and logs the transition. The
// flows are linear, so a refused transition indicates a handler bug.
func advance(lc *pipeline.Lifecycle, next pipeline.State, logger zerolog.Logger) {
	if err := lc.Advance(next); err != nil {
		logger.Warn().Err(err).Msg("Pipeline state error")
		return
	}
	logger.Debug().Str("state", next.String()).Msg("Pipeline advanced")
}

// NewHandler creates the orchestrating handler.
func NewHandler(
	transcriber transcribe.Gateway,
	completer complete.Gateway,
	publisher *events.Publisher,
	limits ingest.Limits,
	sttModel string,
) *Handler {
	return &Handler{
		transcriber: transcriber,
		completer:   completer,
		publisher:   publisher,
		ids:         pipeline.NewGenerator(),
		limits:      limits,
		sttModel:    sttModel,
		metrics:     metrics.DefaultMetrics,
	}
}
