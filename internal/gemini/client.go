// Package gemini implements video analysis and marketing copy generation on
// top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"clipforge/internal/align"
	"clipforge/internal/clip"
	"clipforge/internal/llm"
	"clipforge/pkg/prompts"
)

const filePollInterval = 5 * time.Second

// Client talks to Gemini for the two text-producing stages: finding
// micro-clips in the source video and writing the social media package.
type Client struct {
	client         *genai.Client
	analysisModel  string
	marketingModel string
	prompts        *prompts.Prompts

	maxClips       int
	minClipSeconds int
	maxClipSeconds int
}

type Options struct {
	AnalysisModel  string
	MarketingModel string
	MaxClips       int
	MinClipSeconds int
	MaxClipSeconds int
}

var scriptLineSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"start_s": {Type: genai.TypeNumber, Description: "Line start in seconds, relative to clip start"},
		"end_s":   {Type: genai.TypeNumber, Description: "Line end in seconds, relative to clip start"},
		"text":    {Type: genai.TypeString, Description: "Narration text for this span"},
	},
	Required: []string{"start_s", "end_s", "text"},
}

var microClipsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"clip_title":         {Type: genai.TypeString, Description: "Short catchy title"},
			"start_time":         {Type: genai.TypeString, Description: "Clip start in the source video, H:MM:SS"},
			"end_time":           {Type: genai.TypeString, Description: "Clip end in the source video, H:MM:SS"},
			"description":        {Type: genai.TypeString, Description: "One-paragraph summary of the moment"},
			"voice_style_prompt": {Type: genai.TypeString, Description: "How the narrator should sound"},
			"tts_sync_script":    {Type: genai.TypeArray, Items: scriptLineSchema, Description: "Timed narration lines"},
		},
		Required: []string{"clip_title", "start_time", "end_time", "description", "voice_style_prompt", "tts_sync_script"},
	},
}

func NewClient(client *genai.Client, p *prompts.Prompts, opts Options) *Client {
	return &Client{
		client:         client,
		analysisModel:  opts.AnalysisModel,
		marketingModel: opts.MarketingModel,
		prompts:        p,
		maxClips:       opts.MaxClips,
		minClipSeconds: opts.MinClipSeconds,
		maxClipSeconds: opts.MaxClipSeconds,
	}
}

// AnalyzeVideo uploads the compressed source video, asks the model to pick
// micro-clip moments with timed narration, and returns the parsed plan. The
// uploaded file is deleted before returning.
func (c *Client) AnalyzeVideo(ctx context.Context, videoPath string) ([]clip.MicroClip, error) {
	prompt, err := c.prompts.RenderAnalysis(prompts.AnalysisParams{
		MaxClips:       c.maxClips,
		MinClipSeconds: c.minClipSeconds,
		MaxClipSeconds: c.maxClipSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	file, err := c.uploadVideo(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if _, err := c.client.Files.Delete(ctx, file.Name, nil); err != nil {
			slog.Warn("failed to delete uploaded video", "file", file.Name, "error", err)
		}
	}()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.prompts.System.Analysis}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   microClipsSchema,
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
			{FileData: &genai.FileData{FileURI: file.URI, MIMEType: file.MIMEType}},
		},
	}}

	resp, err := c.client.Models.GenerateContent(ctx, c.analysisModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("analyze video: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return ParseClips([]byte(text))
}

// MarketingCopy generates the social media package promoting the produced
// clips.
func (c *Client) MarketingCopy(ctx context.Context, clipSummaries string) (*llm.MarketingPackage, error) {
	prompt, err := c.prompts.RenderMarketing(prompts.MarketingParams{ClipSummaries: clipSummaries})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.prompts.System.Marketing}},
		},
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.marketingModel, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate marketing copy: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var pkg llm.MarketingPackage
	if err := json.Unmarshal([]byte(text), &pkg); err != nil {
		return nil, fmt.Errorf("parse marketing copy: %w", err)
	}
	return &pkg, nil
}

func (c *Client) uploadVideo(ctx context.Context, videoPath string) (*genai.File, error) {
	file, err := c.client.Files.UploadFromPath(ctx, videoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	for file.State == genai.FileStateProcessing {
		slog.Debug("waiting for uploaded video to become active", "file", file.Name, "state", file.State)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(filePollInterval):
		}
		file, err = c.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("poll uploaded video: %w", err)
		}
	}
	if file.State != genai.FileStateActive {
		return nil, fmt.Errorf("uploaded video %s in state %s", file.Name, file.State)
	}
	return file, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response")
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

type scriptLineDTO struct {
	StartS float64 `json:"start_s"`
	EndS   float64 `json:"end_s"`
	Text   string  `json:"text"`
}

type microClipDTO struct {
	ClipTitle        string          `json:"clip_title"`
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	Description      string          `json:"description"`
	VoiceStylePrompt string          `json:"voice_style_prompt"`
	TTSSyncScript    []scriptLineDTO `json:"tts_sync_script"`
}

// ParseClips decodes the analysis response into the pipeline's clip plan.
// Clips that fail validation are dropped with a warning rather than failing
// the whole run.
func ParseClips(data []byte) ([]clip.MicroClip, error) {
	var dtos []microClipDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}

	clips := make([]clip.MicroClip, 0, len(dtos))
	for _, dto := range dtos {
		mc := clip.MicroClip{
			Title:            dto.ClipTitle,
			StartTime:        dto.StartTime,
			EndTime:          dto.EndTime,
			Description:      dto.Description,
			VoiceStylePrompt: dto.VoiceStylePrompt,
		}
		for _, line := range dto.TTSSyncScript {
			mc.Script = append(mc.Script, align.ScriptLine{
				Start: line.StartS,
				End:   line.EndS,
				Text:  line.Text,
			})
		}
		if err := mc.Validate(); err != nil {
			slog.Warn("dropping invalid clip from analysis response", "error", err)
			continue
		}
		clips = append(clips, mc)
	}

	if len(clips) == 0 {
		return nil, fmt.Errorf("analysis produced no usable clips")
	}
	return clips, nil
}
