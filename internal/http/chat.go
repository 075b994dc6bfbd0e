package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/observability/logging"
	"ai-voice-chat-service/internal/pipeline"
)

// HandleChat serves POST /api/chat: validate the prompt, forward it to
// the completion gateway, respond. A validation failure never reaches
// the gateway.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	requestId := h.ids.Next()
	logger := logging.WithRequest(requestId, "/api/chat")
	lc := pipeline.NewLifecycle(requestId)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		lc.Fail()
		writeError(w, fault.New(fault.KindClientInput, "invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		lc.Fail()
		writeError(w, fault.New(fault.KindClientInput, "prompt is required"))
		return
	}
	advance(lc, pipeline.StateIngested, logger)

	advance(lc, pipeline.StateCompleting, logger)
	start := time.Now()
	result, err := h.completer.Complete(r.Context(), req.Prompt)
	h.metrics.RecordGatewayCall("complete", err, fault.KindOf(err).String(), time.Since(start).Seconds())
	if err != nil {
		lc.Fail()
		logger.Error().Err(err).Str("kind", fault.KindOf(err).String()).Msg("Completion failed")
		writeError(w, err)
		return
	}

	advance(lc, pipeline.StateSucceeded, logger)
	h.publishCompleted(r, requestId, req.Prompt, result)

	logger.Info().
		Str("model", result.Model).
		Int("totalTokens", result.Usage.TotalTokens).
		Msg("Chat request completed")

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Text:  result.Text,
		Model: result.Model,
		Usage: result.Usage,
	})
}
