package http

import (
	"net/http"
	"strings"
	"time"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/ingest"
	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/observability/logging"
	"ai-voice-chat-service/internal/pipeline"
)

// HandleAudio serves POST /api/audio: buffer the multipart upload,
// transcribe it, forward the transcript to the completion gateway and
// respond with both texts. Any stage failure is terminal; no later
// stage executes.
func (h *Handler) HandleAudio(w http.ResponseWriter, r *http.Request) {
	requestId := h.ids.Next()
	logger := logging.WithRequest(requestId, "/api/audio")
	lc := pipeline.NewLifecycle(requestId)

	form, err := ingest.Parse(r.Header.Get("Content-Type"), r.Body, h.limits)
	if err != nil {
		lc.Fail()
		h.metrics.RecordUploadRejected(fault.KindOf(err).String())
		logger.Warn().Err(err).Msg("Upload rejected")
		writeError(w, err)
		return
	}
	if form.Audio.Empty() {
		lc.Fail()
		h.metrics.RecordUploadRejected("empty_audio")
		writeError(w, fault.New(fault.KindClientInput, "audio file missing or empty"))
		return
	}
	h.metrics.RecordAudioReceived(len(form.Audio.Bytes))
	advance(lc, pipeline.StateIngested, logger)

	model := form.Fields["model"]
	if model == "" {
		model = h.sttModel
	}

	advance(lc, pipeline.StateTranscribing, logger)
	start := time.Now()
	transcript, err := h.transcriber.Transcribe(r.Context(), form.Audio, model)
	h.metrics.RecordGatewayCall("transcribe", err, fault.KindOf(err).String(), time.Since(start).Seconds())
	if err != nil {
		lc.Fail()
		logger.Error().Err(err).Str("kind", fault.KindOf(err).String()).Msg("Transcription failed")
		writeError(w, err)
		return
	}
	if strings.TrimSpace(transcript.Text) == "" {
		lc.Fail()
		writeError(w, fault.New(fault.KindClientInput, "no speech detected in audio"))
		return
	}
	advance(lc, pipeline.StateTranscribed, logger)

	h.publishTranscribed(r, requestId, model, transcript.Text)

	advance(lc, pipeline.StateCompleting, logger)
	start = time.Now()
	result, err := h.completer.Complete(r.Context(), transcript.Text)
	h.metrics.RecordGatewayCall("complete", err, fault.KindOf(err).String(), time.Since(start).Seconds())
	if err != nil {
		lc.Fail()
		logger.Error().Err(err).Str("kind", fault.KindOf(err).String()).Msg("Completion failed")
		writeError(w, err)
		return
	}

	advance(lc, pipeline.StateSucceeded, logger)
	h.publishCompleted(r, requestId, transcript.Text, result)

	logger.Info().
		Int("audioBytes", len(form.Audio.Bytes)).
		Str("model", result.Model).
		Int("totalTokens", result.Usage.TotalTokens).
		Msg("Audio request completed")

	writeJSON(w, http.StatusOK, models.AudioChatResponse{
		TranscribedText: transcript.Text,
		LLMResponse:     result.Text,
		Model:           result.Model,
		Usage:           result.Usage,
	})
}
