// Package config loads service configuration from the environment. All
// values are read once at startup and are read-only afterwards.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig holds process identity and HTTP listener settings.
type ServiceConfig struct {
	Principal string
	HTTPPort  string
	StaticDir string // directory with the single-page client UI; empty disables serving
}

// GroqConfig holds credentials and model identifiers for the Groq API.
type GroqConfig struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	WhisperModel string
	Timeout      time.Duration // bound on each outbound call
}

// STTConfig selects and parameterizes the transcription backend.
type STTConfig struct {
	Provider     string // groq, google or mock
	LanguageCode string // google only
	SampleRateHz int32  // google only
}

// UploadConfig bounds multipart ingestion.
type UploadConfig struct {
	MaxAudioBytes int64
	MaxFieldBytes int64
}

// KafkaConfig holds event publishing configuration.
type KafkaConfig struct {
	Enabled          bool
	Brokers          []string
	TopicTranscribed string
	TopicCompleted   string
	Principal        string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	MetricsPort string
}

// Config is the process-wide configuration.
type Config struct {
	Service       ServiceConfig
	Groq          GroqConfig
	STT           STTConfig
	Upload        UploadConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset or unparseable.
func Load() *Config {
	cfg := &Config{
		Service: ServiceConfig{
			Principal: envOrDefault("SERVICE_PRINCIPAL", "svc-voice-chat"),
			HTTPPort:  envOrDefault("HTTP_PORT", "3000"),
			StaticDir: envOrDefault("STATIC_DIR", "public"),
		},
		Groq: GroqConfig{
			APIKey:       os.Getenv("GROQ_API_KEY"),
			BaseURL:      envOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			ChatModel:    envOrDefault("CHAT_MODEL_ID", "deepseek-r1-distill-llama-70b"),
			WhisperModel: envOrDefault("WHISPER_MODEL_ID", "whisper-large-v3-turbo"),
			Timeout:      envOrDefaultDuration("GROQ_TIMEOUT", 60*time.Second),
		},
		STT: STTConfig{
			Provider:     envOrDefault("STT_PROVIDER", "groq"),
			LanguageCode: envOrDefault("STT_LANGUAGE_CODE", "en-US"),
			SampleRateHz: int32(envOrDefaultInt("STT_SAMPLE_RATE_HZ", 16000)),
		},
		Upload: UploadConfig{
			MaxAudioBytes: envOrDefaultInt64("UPLOAD_MAX_AUDIO_BYTES", 10*1024*1024),
			MaxFieldBytes: envOrDefaultInt64("UPLOAD_MAX_FIELD_BYTES", 64*1024),
		},
		Kafka: KafkaConfig{
			Enabled:          envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:          envOrDefaultList("KAFKA_BROKERS", nil),
			TopicTranscribed: envOrDefault("KAFKA_TOPIC_TRANSCRIBED", "voice.chat.transcribed"),
			TopicCompleted:   envOrDefault("KAFKA_TOPIC_COMPLETED", "voice.chat.completed"),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		},
	}

	// Kafka principal defaults to the service principal.
	cfg.Kafka.Principal = envOrDefault("KAFKA_PRINCIPAL", cfg.Service.Principal)

	return cfg
}

// Validate reports configuration problems that would break outbound
// calls. A missing API key is fine with the mock provider.
func (c *Config) Validate() error {
	if c.Groq.APIKey == "" && c.STT.Provider != "mock" {
		return errors.New("GROQ_API_KEY is not set; remote API calls will fail")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
