// Package google provides a transcription gateway backed by Google Cloud
// Speech-to-Text. Buffered uploads use the batch Recognize call rather
// than a streaming session.
package google

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/status"

	"ai-voice-chat-service/internal/fault"
	"ai-voice-chat-service/internal/models"
	"ai-voice-chat-service/internal/service/transcribe"
)

// Config holds recognition parameters for buffered uploads.
type Config struct {
	LanguageCode string // e.g. "en-US"
	SampleRateHz int32  // e.g. 16000
}

// Gateway implements transcribe.Gateway using Google Cloud Speech-to-Text.
type Gateway struct {
	client       *speech.Client
	languageCode string
	sampleRateHz int32
}

// New creates a Google transcription gateway.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
func New(ctx context.Context, cfg Config) (*Gateway, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		client:       c,
		languageCode: cfg.LanguageCode,
		sampleRateHz: cfg.SampleRateHz,
	}, nil
}

// Transcribe sends the whole audio buffer in one Recognize call. The
// model argument selects nothing here; Google model choice is part of the
// recognition config, so the per-request override is ignored.
func (g *Gateway) Transcribe(ctx context.Context, payload models.AudioPayload, _ string) (transcribe.Result, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: g.sampleRateHz,
			LanguageCode:    g.languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: payload.Bytes},
		},
	})
	if err != nil {
		st, _ := status.FromError(err)
		return transcribe.Result{}, fault.New(fault.KindRemoteService,
			"google speech recognize: %s: %s", st.Code(), st.Message())
	}

	var parts []string
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		parts = append(parts, r.Alternatives[0].Transcript)
	}

	return transcribe.Result{Text: strings.Join(parts, " ")}, nil
}

// Close releases the underlying gRPC connection.
func (g *Gateway) Close() error {
	return g.client.Close()
}
