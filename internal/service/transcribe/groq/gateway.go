// Package groq provides a transcription gateway backed by Groq's
// OpenAI-compatible /audio/transcriptions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/service/remote"
	"ai-voice-chat-service/internal/service/transcribe"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// uploadFilename is the synthetic filename for the outbound file part.
	uploadFilename = "audio.wav"

	defaultMimeType = "audio/wav"

	// maxResponseBytes bounds how much of an upstream body is buffered.
	maxResponseBytes = 1 << 20
)

// Config holds gateway configuration.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // bound on the outbound call
}

// Gateway implements transcribe.Gateway against the Groq API.
type Gateway struct {
	apiKey string
	url    string
	client *http.Client
}

// New creates a Groq transcription gateway.
func New(cfg Config) *Gateway {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Gateway{
		apiKey: cfg.APIKey,
		url:    base + "/audio/transcriptions",
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// transcriptionResponse is the success shape. Text is a pointer so a
// missing field is distinguishable from an empty transcript.
type transcriptionResponse struct {
	Text *string `json:"text"`
}

// Transcribe packages the audio buffer into a multipart request and
// performs one call. The payload's MIME type is preserved on the file
// part, defaulting to audio/wav when unknown.
func (g *Gateway) Transcribe(ctx context.Context, payload models.AudioPayload, model string) (transcribe.Result, error) {
	body, contentType, err := encodeForm(payload, model)
	if err != nil {
		return transcribe.Result{}, fault.New(fault.KindInternal, "encoding transcription request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, body)
	if err != nil {
		return transcribe.Result{}, fault.New(fault.KindInternal, "building transcription request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return transcribe.Result{}, fault.New(fault.KindRemoteService, "calling transcription service: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transcribe.Result{}, fault.New(fault.KindRemoteService, "reading transcription response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transcribe.Result{}, fault.Remote(resp.StatusCode, remote.ErrorMessage(resp.StatusCode, data))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.Text == nil {
		return transcribe.Result{}, fault.New(fault.KindInvalidResponse, "transcription response missing text field")
	}

	return transcribe.Result{Text: *parsed.Text}, nil
}

// encodeForm builds the outbound multipart body: a file part named "file"
// under a synthetic filename plus a "model" field.
func encodeForm(payload models.AudioPayload, model string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("model", model); err != nil {
		return nil, "", err
	}

	mimeType := payload.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+uploadFilename+`"`)
	header.Set("Content-Type", mimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload.Bytes); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
