package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"time"
)

func main() {
	serverAddr := flag.String("server", "http://localhost:3000", "Service base URL")
	prompt := flag.String("prompt", "Hello, how are you?", "Prompt to send")
	flag.Parse()

	body, err := json.Marshal(map[string]string{"prompt": *prompt})
	if err != nil {
		log.Fatalf("failed to encode request: %v", err)
	}

	client := &http.Client{Timeout: 90 * time.Second}

	log.Printf("Sending prompt to %s/api/chat", *serverAddr)
	resp, err := client.Post(*serverAddr+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("server returned %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		Text  string `json:"text"`
		Model string `json:"model"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}

	log.Printf("Model: %s (tokens=%d)", result.Model, result.Usage.TotalTokens)
	log.Printf("Response: %s", result.Text)
}
