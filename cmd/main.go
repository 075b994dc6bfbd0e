package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"ai-voice-chat-service/internal/config"
	"ai-voice-chat-service/internal/events"
	apihttp "ai-voice-chat-service/internal/http"
	"ai-voice-chat-service/internal/ingest"
	"ai-voice-chat-service/internal/observability"
	"ai-voice-chat-service/internal/observability/logging"
	completegw "ai-voice-chat-service/internal/service/complete"
	completegroq "ai-voice-chat-service/internal/service/complete/groq"
	completemock "ai-voice-chat-service/internal/service/complete/mock"
	transcribegw "ai-voice-chat-service/internal/service/transcribe"
	transcribegoogle "ai-voice-chat-service/internal/service/transcribe/google"
	transcribegroq "ai-voice-chat-service/internal/service/transcribe/groq"
	transcribemock "ai-voice-chat-service/internal/service/transcribe/mock"
)

func main() {
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     "json",
		TimeFormat: time.RFC3339,
		Service:    cfg.Service.Principal,
	})

	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("Configuration incomplete")
	}

	ctx := context.Background()

	transcriber, cleanup := buildTranscriber(ctx, cfg)
	if cleanup != nil {
		defer cleanup()
	}
	completer := buildCompleter(cfg)

	// Create Kafka publisher with separate topics for transcription and completion events
	publisher := events.New(&events.Config{
		Enabled:          cfg.Kafka.Enabled,
		Brokers:          cfg.Kafka.Brokers,
		TopicTranscribed: cfg.Kafka.TopicTranscribed,
		TopicCompleted:   cfg.Kafka.TopicCompleted,
		Principal:        cfg.Kafka.Principal,
	})
	defer publisher.Close()

	handler := apihttp.NewHandler(
		transcriber,
		completer,
		publisher,
		ingest.Limits{
			MaxAudioBytes: cfg.Upload.MaxAudioBytes,
			MaxFieldBytes: cfg.Upload.MaxFieldBytes,
		},
		cfg.Groq.WhisperModel,
	)

	obsServer := observability.NewServer(":" + cfg.Observability.MetricsPort)
	obsServer.Start()

	server := &http.Server{
		Addr:         ":" + cfg.Service.HTTPPort,
		Handler:      apihttp.NewRouter(handler, cfg.Service.StaticDir),
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  time.Minute,
	}

	go func() {
		log.Info().
			Str("port", cfg.Service.HTTPPort).
			Str("sttProvider", cfg.STT.Provider).
			Msg("Voice chat service started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Observability shutdown failed")
	}
}

// buildTranscriber selects the transcription backend from configuration.
// Unknown providers fall back to the mock so the service always starts.
func buildTranscriber(ctx context.Context, cfg *config.Config) (transcribegw.Gateway, func()) {
	switch cfg.STT.Provider {
	case "groq":
		return transcribegroq.New(transcribegroq.Config{
			APIKey:  cfg.Groq.APIKey,
			BaseURL: cfg.Groq.BaseURL,
			Timeout: cfg.Groq.Timeout,
		}), nil
	case "google":
		gw, err := transcribegoogle.New(ctx, transcribegoogle.Config{
			LanguageCode: cfg.STT.LanguageCode,
			SampleRateHz: cfg.STT.SampleRateHz,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Google STT init failed")
		}
		return gw, func() { gw.Close() }
	case "mock":
		return transcribemock.New(), nil
	default:
		log.Warn().Str("provider", cfg.STT.Provider).Msg("Unknown STT provider, using mock")
		return transcribemock.New(), nil
	}
}

// buildCompleter selects the completion backend. The mock provider keeps
// the whole pipeline runnable without credentials.
func buildCompleter(cfg *config.Config) completegw.Gateway {
	if cfg.STT.Provider == "mock" || cfg.Groq.APIKey == "" {
		return completemock.New()
	}
	return completegroq.New(completegroq.Config{
		APIKey:  cfg.Groq.APIKey,
		BaseURL: cfg.Groq.BaseURL,
		Model:   cfg.Groq.ChatModel,
		Timeout: cfg.Groq.Timeout,
	})
}
