// Package models defines the request, response and event data structures
// exchanged over the HTTP API and published to Kafka.
package models

// AudioPayload is the in-memory audio buffer extracted from a multipart
// upload. It is owned exclusively by the request that received it and is
// released once the transcription call completes.
type AudioPayload struct {
	Bytes    []byte
	MimeType string
	Filename string
}

// Empty reports whether the payload carries no audio bytes.
func (p AudioPayload) Empty() bool {
	return len(p.Bytes) == 0
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// Usage carries token accounting echoed back by the completion API.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// AudioChatResponse is the success body of POST /api/audio. It bundles the
// transcript alongside the completion so the client can display both.
type AudioChatResponse struct {
	TranscribedText string `json:"transcribedText"`
	LLMResponse     string `json:"llmResponse"`
	Model           string `json:"model"`
	Usage           Usage  `json:"usage"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
