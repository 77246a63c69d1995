package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conneroisu/groq-go"

	"clipforge/pkg/prompts"
)

// GroqClient generates marketing copy through the Groq API. It is the cheap
// alternative to the Gemini copywriter for runs where the analysis quota is
// better spent on video.
type GroqClient struct {
	client  *groq.Client
	model   groq.ChatModel
	prompts *prompts.Prompts
}

func NewGroqClient(apiKey, model string, p *prompts.Prompts) (*GroqClient, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &GroqClient{
		client:  client,
		model:   groq.ChatModel(model),
		prompts: p,
	}, nil
}

func (c *GroqClient) MarketingCopy(ctx context.Context, clipSummaries string) (*MarketingPackage, error) {
	prompt, err := c.prompts.RenderMarketing(prompts.MarketingParams{ClipSummaries: clipSummaries})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := c.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: c.prompts.System.Marketing},
			{Role: groq.RoleUser, Content: prompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	var pkg MarketingPackage
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &pkg, nil
}
