package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-voice-chat-service/internal/fault"
)

func newTestGateway(url string) *Gateway {
	return New(Config{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "deepseek-r1-distill-llama-70b",
		Timeout: 5 * time.Second,
	})
}

func TestComplete_Success(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "Hi there"}}],
			"model": "deepseek-r1-distill-llama-70b",
			"usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
		}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	result, err := g.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "Hi there" {
		t.Errorf("expected text 'Hi there', got %q", result.Text)
	}
	if result.Model != "deepseek-r1-distill-llama-70b" {
		t.Errorf("expected echoed model, got %q", result.Model)
	}
	if result.Usage.TotalTokens != 8 {
		t.Errorf("expected 8 total tokens, got %d", result.Usage.TotalTokens)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}

	// Fixed sampling parameters must be sent verbatim.
	if gotBody["model"] != "deepseek-r1-distill-llama-70b" {
		t.Errorf("expected configured model in request, got %v", gotBody["model"])
	}
	if gotBody["temperature"] != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(1000) {
		t.Errorf("expected max_tokens 1000, got %v", gotBody["max_tokens"])
	}
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected one message, got %v", gotBody["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "hello" {
		t.Errorf("expected user message with prompt, got %v", msg)
	}
}

func TestComplete_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit reached"}}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}

	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatal("expected *fault.Error")
	}
	if fe.Kind != fault.KindRemoteService {
		t.Errorf("expected REMOTE_SERVICE fault, got %s", fe.Kind)
	}
	if fe.UpstreamStatus != http.StatusTooManyRequests {
		t.Errorf("expected upstream status 429, got %d", fe.UpstreamStatus)
	}
	if fe.Message != "rate limit reached" {
		t.Errorf("expected normalized message, got %q", fe.Message)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [], "model": "m"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if fault.KindOf(err) != fault.KindInvalidResponse {
		t.Errorf("expected INVALID_RESPONSE fault, got %s", fault.KindOf(err))
	}
}

func TestComplete_MissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {}}], "model": "m"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for missing content")
	}
	if fault.KindOf(err) != fault.KindInvalidResponse {
		t.Errorf("expected INVALID_RESPONSE fault, got %s", fault.KindOf(err))
	}
}

func TestComplete_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	if fault.KindOf(err) != fault.KindRemoteService {
		t.Errorf("expected REMOTE_SERVICE fault, got %s", fault.KindOf(err))
	}
}
