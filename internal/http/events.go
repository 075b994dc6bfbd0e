package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/service/complete"
)

// publishTranscribed emits a transcription event. Publishing is
// best-effort; a failure never affects the client response.
func (h *Handler) publishTranscribed(r *http.Request, requestId, model, text string) {
	ev := models.ChatTranscribed{
		EventType: "voice.chat.transcribed",
		RequestID: requestId,
		Model:     model,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := h.publisher.PublishTranscribed(r.Context(), requestId, ev); err != nil {
		log.Error().Err(err).Str("requestId", requestId).Msg("Failed to publish transcribed event")
	}
}

// publishCompleted emits a completion event.
func (h *Handler) publishCompleted(r *http.Request, requestId, prompt string, result complete.Result) {
	ev := models.ChatCompleted{
		EventType:   "voice.chat.completed",
		RequestID:   requestId,
		Model:       result.Model,
		Prompt:      prompt,
		Text:        result.Text,
		TotalTokens: result.Usage.TotalTokens,
		Timestamp:   time.Now().UnixMilli(),
	}
	if err := h.publisher.PublishCompleted(r.Context(), requestId, ev); err != nil {
		log.Error().Err(err).Str("requestId", requestId).Msg("Failed to publish completed event")
	}
}
