package tts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

const (
	defaultVoiceName = "Kore"
	maxAttempts      = 3
	retryDelay       = 2 * time.Second
)

// GeminiClient implements Provider using Gemini speech generation. The
// service occasionally returns a response with no audio payload, so calls are
// retried a bounded number of times with a fixed delay before giving up.
type GeminiClient struct {
	client *genai.Client
	model  string
	voice  string
}

type GeminiOptions struct {
	Model string
	Voice string
}

func NewGeminiClient(client *genai.Client, opts GeminiOptions) *GeminiClient {
	voice := opts.Voice
	if voice == "" {
		voice = defaultVoiceName
	}
	return &GeminiClient{
		client: client,
		model:  opts.Model,
		voice:  voice,
	}
}

// Synthesize renders narration text as a mono PCM WAV. stylePrompt steers
// delivery (tone, pace) and is prepended to the request rather than sent as a
// system instruction, which the speech models do not accept.
func (c *GeminiClient) Synthesize(ctx context.Context, text, stylePrompt string) ([]byte, error) {
	prompt := text
	if stylePrompt != "" {
		prompt = fmt.Sprintf("[Style: %s, and aim for 12 cps]\n\n%s", stylePrompt, text)
	}

	config := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr[float32](1),
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: c.voice,
				},
			},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		pcm, mimeType, err := c.generate(ctx, prompt, config)
		if err != nil {
			slog.Warn("Speech generation attempt failed", "attempt", attempt, "error", err)
			lastErr = err
			continue
		}
		return EncodeWAV(pcm, mimeType)
	}

	return nil, fmt.Errorf("synthesize speech after %d attempts: %w", maxAttempts, lastErr)
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) ([]byte, string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", fmt.Errorf("no response")
	}

	var pcm []byte
	mimeType := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		pcm = append(pcm, part.InlineData.Data...)
		if mimeType == "" {
			mimeType = part.InlineData.MIMEType
		}
	}
	if len(pcm) == 0 {
		return nil, "", fmt.Errorf("no audio data in response")
	}

	return pcm, mimeType, nil
}
