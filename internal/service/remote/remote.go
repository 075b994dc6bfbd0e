// Package remote provides shared helpers for normalizing responses from
// the external speech and completion APIs. Both gateways use the same
// error shape and truncation bound.
package remote

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxErrorBodyBytes bounds how much of a raw upstream error body is
// carried into an error message.
const MaxErrorBodyBytes = 512

// apiError is the {"error": {"message": ...}} shape both Groq endpoints
// return on failure.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ErrorMessage extracts a human-readable message from a non-2xx upstream
// response body. Structured JSON wins; otherwise the raw body is truncated
// to MaxErrorBodyBytes. An empty body falls back to a generic message
// carrying the status code.
func ErrorMessage(status int, body []byte) string {
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}

	raw := strings.TrimSpace(string(Truncate(body, MaxErrorBodyBytes)))
	if raw == "" {
		return fmt.Sprintf("remote service returned status %d", status)
	}
	return raw
}

// Truncate bounds b to at most n bytes.
func Truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
