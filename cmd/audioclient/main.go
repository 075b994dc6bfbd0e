package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"flag"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// WAV header is 44 bytes for standard PCM files
const wavHeaderSize = 44

func main() {
	audioFile := flag.String("audio", "testdata/sample-16khz.wav", "Path to WAV file (16-bit PCM)")
	serverAddr := flag.String("server", "http://localhost:3000", "Service base URL")
	model := flag.String("model", "", "Transcription model override (optional)")
	flag.Parse()

	// Open audio file
	f, err := os.Open(*audioFile)
	if err != nil {
		log.Fatalf("Failed to open audio file: %v", err)
	}
	defer f.Close()

	// Read and validate WAV header
	header := make([]byte, wavHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		log.Fatalf("Failed to read WAV header: %v", err)
	}

	// Validate it's a WAV file
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		log.Fatal("Not a valid WAV file")
	}

	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	numChannels := binary.LittleEndian.Uint16(header[22:24])
	sampleRate := binary.LittleEndian.Uint32(header[24:28])
	bitsPerSample := binary.LittleEndian.Uint16(header[34:36])

	log.Printf("WAV file: format=%d channels=%d sampleRate=%d bitsPerSample=%d",
		audioFormat, numChannels, sampleRate, bitsPerSample)

	if audioFormat != 1 { // PCM
		log.Fatal("Only PCM format supported")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		log.Fatalf("Failed to rewind audio file: %v", err)
	}

	// Build multipart body
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if *model != "" {
		if err := w.WriteField("model", *model); err != nil {
			log.Fatalf("Failed to write model field: %v", err)
		}
	}
	fw, err := w.CreateFormFile("audio", filepath.Base(*audioFile))
	if err != nil {
		log.Fatalf("Failed to create form file: %v", err)
	}
	n, err := io.Copy(fw, f)
	if err != nil {
		log.Fatalf("Failed to copy audio: %v", err)
	}
	if err := w.Close(); err != nil {
		log.Fatalf("Failed to finalize form: %v", err)
	}

	log.Printf("Uploading %d bytes to %s/api/audio", n, *serverAddr)

	client := &http.Client{Timeout: 3 * time.Minute}
	resp, err := client.Post(*serverAddr+"/api/audio", w.FormDataContentType(), &buf)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Server returned %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		TranscribedText string `json:"transcribedText"`
		LLMResponse     string `json:"llmResponse"`
		Model           string `json:"model"`
		Usage           struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	log.Printf("Transcript: %s", result.TranscribedText)
	log.Printf("Model: %s (tokens=%d)", result.Model, result.Usage.TotalTokens)
	log.Printf("Response: %s", result.LLMResponse)
}
