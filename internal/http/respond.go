package http

import (
	"encoding/json"
	"net/http"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a pipeline failure to its status code and writes the
// uniform {"error": ...} body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, fault.HTTPStatus(err), models.ErrorResponse{Error: err.Error()})
}
