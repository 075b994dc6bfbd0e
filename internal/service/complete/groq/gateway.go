// Package groq provides a completion gateway backed by Groq's
// OpenAI-compatible /chat/completions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/service/complete"
	"ai-voice-chat-service/internal/service/remote"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// Sampling parameters are fixed, not derived per request.
	samplingTemperature = 0.7
	maxCompletionTokens = 1000

	maxResponseBytes = 1 << 20
)

// Config holds gateway configuration.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Model   string        // completion model identifier
	Timeout time.Duration // bound on the outbound call
}

// Gateway implements complete.Gateway against the Groq API.
type Gateway struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

// New creates a Groq completion gateway.
func New(cfg Config) *Gateway {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Gateway{
		apiKey: cfg.APIKey,
		url:    base + "/chat/completions",
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// completionResponse is the success shape. Content is a pointer so a
// missing field is distinguishable from an empty completion.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Model string       `json:"model"`
	Usage models.Usage `json:"usage"`
}

// Complete performs one chat-completion call with the fixed sampling
// temperature and output bound.
func (g *Gateway) Complete(ctx context.Context, prompt string) (complete.Result, error) {
	reqBody, err := json.Marshal(completionRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: samplingTemperature,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return complete.Result{}, fault.New(fault.KindInternal, "encoding completion request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(reqBody))
	if err != nil {
		return complete.Result{}, fault.New(fault.KindInternal, "building completion request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return complete.Result{}, fault.New(fault.KindRemoteService, "calling completion service: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return complete.Result{}, fault.New(fault.KindRemoteService, "reading completion response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return complete.Result{}, fault.Remote(resp.StatusCode, remote.ErrorMessage(resp.StatusCode, data))
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return complete.Result{}, fault.New(fault.KindInvalidResponse, "completion response is not valid JSON")
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return complete.Result{}, fault.New(fault.KindInvalidResponse, "completion response missing message content")
	}

	return complete.Result{
		Text:  *parsed.Choices[0].Message.Content,
		Model: parsed.Model,
		Usage: parsed.Usage,
	}, nil
}
