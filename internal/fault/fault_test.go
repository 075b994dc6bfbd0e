package fault

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindClientInput, "CLIENT_INPUT"},
		{KindTransport, "TRANSPORT"},
		{KindRemoteService, "REMOTE_SERVICE"},
		{KindInvalidResponse, "INVALID_RESPONSE"},
		{KindInternal, "INTERNAL"},
		{Kind(99), "UNKNOWN(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %s, want %s", tt.kind, got, tt.expected)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"client input", New(KindClientInput, "prompt is required"), http.StatusBadRequest},
		{"transport", New(KindTransport, "read failed"), http.StatusInternalServerError},
		{"remote service", Remote(404, "model not found"), http.StatusInternalServerError},
		{"invalid response", New(KindInvalidResponse, "missing text"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	inner := Remote(502, "bad gateway")
	wrapped := fmt.Errorf("transcribe: %w", inner)

	if got := KindOf(wrapped); got != KindRemoteService {
		t.Errorf("expected REMOTE_SERVICE for wrapped fault, got %s", got)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Errorf("expected INTERNAL for plain error, got %s", got)
	}
}

func TestRemote_CarriesUpstreamStatus(t *testing.T) {
	err := Remote(404, "model not found")

	if err.UpstreamStatus != 404 {
		t.Errorf("expected upstream status 404, got %d", err.UpstreamStatus)
	}
	if err.Error() != "model not found" {
		t.Errorf("expected message 'model not found', got %s", err.Error())
	}
}
