package models

// ChatTranscribed is published after a successful transcription stage.
type ChatTranscribed struct {
	EventType string `json:"eventType"`
	RequestID string `json:"requestId"`
	Model     string `json:"model"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ChatCompleted is published after a request reaches its terminal state.
type ChatCompleted struct {
	EventType   string `json:"eventType"`
	RequestID   string `json:"requestId"`
	Model       string `json:"model"`
	Prompt      string `json:"prompt"`
	Text        string `json:"text"`
	TotalTokens int    `json:"totalTokens"`
	Timestamp   int64  `json:"timestamp"`
}
