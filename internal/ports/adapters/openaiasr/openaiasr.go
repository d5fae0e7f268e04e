// Package openaiasr transcribes audio through the hosted OpenAI
// Whisper API, for setups without a local whisper.cpp build.
package openaiasr

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/corsacca/voice-changer/internal/types"
)

type Adapter struct {
	client *openai.Client
}

func New(apiKey string) *Adapter {
	return &Adapter{client: openai.NewClient(apiKey)}
}

func (a *Adapter) Name() string { return "openai-whisper" }

func (a *Adapter) Transcribe(ctx context.Context, wavPath, _ string) (types.Transcript, error) {
	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: wavPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return types.Transcript{}, fmt.Errorf("openai transcription: %w", err)
	}

	tr := types.Transcript{
		FullText:      strings.TrimSpace(resp.Text),
		TotalDuration: resp.Duration,
	}
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		tr.Segments = append(tr.Segments, types.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  text,
		})
		if s.End > tr.TotalDuration {
			tr.TotalDuration = s.End
		}
	}
	return tr, nil
}
