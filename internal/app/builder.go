package app

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"clipforge/internal/fetch"
	"clipforge/internal/gemini"
	"clipforge/internal/llm"
	"clipforge/internal/storage"
	"clipforge/internal/tts"
	"clipforge/internal/video"
	"clipforge/pkg/config"
	"clipforge/pkg/httputil"
	"clipforge/pkg/prompts"
)

// BuildService constructs the full collaborator graph from configuration.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set, run `clipforge setup` first")
	}

	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	geminiClient := gemini.NewClient(genaiClient, p, gemini.Options{
		AnalysisModel:  cfg.Gemini.AnalysisModel,
		MarketingModel: cfg.Gemini.MarketingModel,
		MaxClips:       cfg.Analysis.MaxClips,
		MinClipSeconds: cfg.Analysis.MinClipSeconds,
		MaxClipSeconds: cfg.Analysis.MaxClipSeconds,
	})

	ttsClient := tts.NewGeminiClient(genaiClient, tts.GeminiOptions{
		Model: cfg.Gemini.TTSModel,
		Voice: cfg.Gemini.TTSVoice,
	})

	var copywriter llm.CopyWriter = geminiClient
	if cfg.Copy.Provider == "groq" {
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("copy provider is groq but GROQ_API_KEY is not set")
		}
		copywriter, err = llm.NewGroqClient(cfg.GroqAPIKey, cfg.Copy.GroqModel, p)
		if err != nil {
			return nil, err
		}
	}

	ffmpeg := video.NewFFmpeg(video.FFmpegOptions{
		FFmpegPath:  cfg.Video.FFmpegPath,
		FFprobePath: cfg.Video.FFprobePath,
		WorkDir:     cfg.Video.WorkDir,
		Resolution:  cfg.Video.Resolution,
	})

	subtitleGen := video.NewSubtitleGenerator(video.SubtitleOptions{
		FontName:       cfg.Subtitles.FontName,
		FontSize:       cfg.Subtitles.FontSize,
		PrimaryColor:   cfg.Subtitles.PrimaryColor,
		HighlightColor: cfg.Subtitles.HighlightColor,
		OutlineColor:   cfg.Subtitles.OutlineColor,
		OutlineSize:    cfg.Subtitles.OutlineSize,
		ShadowSize:     cfg.Subtitles.ShadowSize,
		Bold:           cfg.Subtitles.Bold,
	})

	aligner := video.NewAligner(ffmpeg, subtitleGen, video.AlignerOptions{
		MinSilenceMs:       cfg.Align.MinSilenceMs,
		SilenceThresholdDB: cfg.Align.SilenceThresholdDB,
	})

	fetcher := fetch.New(httputil.NewRetryClient(http.DefaultClient, httputil.DefaultRetryConfig()), ffmpeg)

	localStorage := storage.NewLocalStorage(cfg.Video.OutputDir)
	if err := localStorage.EnsureDirectories(); err != nil {
		return nil, err
	}

	var archiver storage.Archiver
	if cfg.GCS.Enabled && cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSArchiver(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
		if err != nil {
			return nil, err
		}
		archiver = gcs
	}

	return NewService(ServiceOptions{
		Config:     cfg,
		Fetcher:    fetcher,
		Analyzer:   geminiClient,
		TTS:        ttsClient,
		Editor:     ffmpeg,
		Aligner:    aligner,
		CopyWriter: copywriter,
		Storage:    localStorage,
		Archiver:   archiver,
	}), nil
}
