package groq

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
)

func testPayload() models.AudioPayload {
	return models.AudioPayload{
		Bytes:    []byte("fake pcm data"),
		MimeType: "audio/webm",
		Filename: "recording.webm",
	}
}

func newTestGateway(url string) *Gateway {
	return New(Config{APIKey: "test-key", BaseURL: url, Timeout: 5 * time.Second})
}

func TestTranscribe_Success(t *testing.T) {
	var gotAuth, gotModel, gotFilename, gotFileType string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFilename = header.Filename
			gotFileType = header.Header.Get("Content-Type")
			gotFile, _ = io.ReadAll(file)
			file.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "hello world"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	result, err := g.Transcribe(context.Background(), testPayload(), "whisper-large-v3-turbo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "hello world" {
		t.Errorf("expected text 'hello world', got %q", result.Text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotModel != "whisper-large-v3-turbo" {
		t.Errorf("expected model field, got %q", gotModel)
	}
	if gotFilename != "audio.wav" {
		t.Errorf("expected synthetic filename 'audio.wav', got %q", gotFilename)
	}
	if gotFileType != "audio/webm" {
		t.Errorf("expected original mime type preserved, got %q", gotFileType)
	}
	if !bytes.Equal(gotFile, testPayload().Bytes) {
		t.Errorf("expected file bytes %q, got %q", testPayload().Bytes, gotFile)
	}
}

func TestTranscribe_DefaultMimeType(t *testing.T) {
	var gotFileType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		if _, header, err := r.FormFile("file"); err == nil {
			gotFileType = header.Header.Get("Content-Type")
		}
		w.Write([]byte(`{"text": ""}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	payload := models.AudioPayload{Bytes: []byte("pcm")}
	if _, err := g.Transcribe(context.Background(), payload, "m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotFileType != "audio/wav" {
		t.Errorf("expected default mime type audio/wav, got %q", gotFileType)
	}
}

func TestTranscribe_RemoteError_StructuredMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"message": "model does not exist"}}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Transcribe(context.Background(), testPayload(), "bogus")
	if err == nil {
		t.Fatal("expected error")
	}

	if fault.KindOf(err) != fault.KindRemoteService {
		t.Errorf("expected REMOTE_SERVICE fault, got %s", fault.KindOf(err))
	}
	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatal("expected *fault.Error")
	}
	if fe.UpstreamStatus != http.StatusNotFound {
		t.Errorf("expected upstream status 404, got %d", fe.UpstreamStatus)
	}
	if fe.Message != "model does not exist" {
		t.Errorf("expected normalized message, got %q", fe.Message)
	}
}

func TestTranscribe_RemoteError_RawFallbackTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("y", 4096)))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Transcribe(context.Background(), testPayload(), "m")
	if err == nil {
		t.Fatal("expected error")
	}

	if len(err.Error()) > 512 {
		t.Errorf("expected error message bounded to 512 bytes, got %d", len(err.Error()))
	}
}

func TestTranscribe_MissingTextField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task": "transcribe"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Transcribe(context.Background(), testPayload(), "m")
	if err == nil {
		t.Fatal("expected error for missing text field")
	}
	if fault.KindOf(err) != fault.KindInvalidResponse {
		t.Errorf("expected INVALID_RESPONSE fault, got %s", fault.KindOf(err))
	}
}

func TestTranscribe_NonJSONSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.Transcribe(context.Background(), testPayload(), "m")
	if err == nil {
		t.Fatal("expected error for non-JSON success body")
	}
	if fault.KindOf(err) != fault.KindInvalidResponse {
		t.Errorf("expected INVALID_RESPONSE fault, got %s", fault.KindOf(err))
	}
}

func TestTranscribe_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately closed

	g := newTestGateway(srv.URL)
	_, err := g.Transcribe(context.Background(), testPayload(), "m")
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	if fault.KindOf(err) != fault.KindRemoteService {
		t.Errorf("expected REMOTE_SERVICE fault, got %s", fault.KindOf(err))
	}
}

func TestTranscribe_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "same every time"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)

	first, err := g.Transcribe(context.Background(), testPayload(), "m")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := g.Transcribe(context.Background(), testPayload(), "m")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}
