// Package config loads runtime configuration from config.yaml with API keys
// coming from the environment (or a .env file).
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "config.yaml"

	defaultAnalysisModel  = "gemini-2.5-flash"
	defaultMarketingModel = "gemini-2.0-flash-lite"
	defaultTTSModel       = "gemini-2.5-flash-preview-tts"
	defaultTTSVoice       = "Kore"
	defaultMaxClips       = 5
	defaultMinClipSeconds = 15
	defaultMaxClipSeconds = 60

	defaultCopyProvider = "gemini"
	defaultGroqModel    = "llama-3.3-70b-versatile"

	defaultWorkDir     = "./work"
	defaultOutputDir   = "./output"
	defaultResolution  = "1080x1920"
	defaultFFmpegPath  = "ffmpeg"
	defaultFFprobePath = "ffprobe"
	defaultParallelism = 2

	defaultMinSilenceMs       = 200
	defaultSilenceThresholdDB = -40.0

	defaultSubtitleFont   = "Montserrat Black"
	defaultSubtitleSize   = 90
	defaultOutlineSize    = 4
	defaultShadowSize     = 2
	defaultPrimaryColor   = "#FFFFFF"
	defaultHighlightColor = "#FFFF00"
	defaultOutlineColor   = "#000000"

	defaultGCSPrefix = "clipforge"
)

type Config struct {
	GeminiAPIKey string
	GroqAPIKey   string
	GCSBucket    string

	Gemini    GeminiConfig    `yaml:"gemini"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Copy      CopyConfig      `yaml:"copy"`
	Video     VideoConfig     `yaml:"video"`
	Align     AlignConfig     `yaml:"align"`
	Subtitles SubtitlesConfig `yaml:"subtitles"`
	GCS       GCSConfig       `yaml:"gcs"`
}

type GeminiConfig struct {
	AnalysisModel  string `yaml:"analysis_model"`
	MarketingModel string `yaml:"marketing_model"`
	TTSModel       string `yaml:"tts_model"`
	TTSVoice       string `yaml:"tts_voice"`
}

type AnalysisConfig struct {
	MaxClips       int `yaml:"max_clips"`
	MinClipSeconds int `yaml:"min_clip_seconds"`
	MaxClipSeconds int `yaml:"max_clip_seconds"`
}

type CopyConfig struct {
	Provider  string `yaml:"provider"` // "gemini" or "groq"
	GroqModel string `yaml:"groq_model"`
}

type VideoConfig struct {
	WorkDir     string `yaml:"work_dir"`
	OutputDir   string `yaml:"output_dir"`
	Resolution  string `yaml:"resolution"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	Parallelism int    `yaml:"parallelism"`
}

type AlignConfig struct {
	MinSilenceMs       int     `yaml:"min_silence_ms"`
	SilenceThresholdDB float64 `yaml:"silence_threshold_db"`
}

type SubtitlesConfig struct {
	FontName       string `yaml:"font_name"`
	FontSize       int    `yaml:"font_size"`
	PrimaryColor   string `yaml:"primary_color"`
	HighlightColor string `yaml:"highlight_color"`
	OutlineColor   string `yaml:"outline_color"`
	OutlineSize    int    `yaml:"outline_size"`
	ShadowSize     int    `yaml:"shadow_size"`
	Bold           bool   `yaml:"bold"`
}

type GCSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Prefix  string `yaml:"prefix"`
}

func Load() *Config {
	return LoadFrom(defaultConfigPath)
}

func LoadFrom(path string) *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GCSBucket:    os.Getenv("GCS_BUCKET"),
	}

	loadYAMLConfig(cfg, path)
	applyDefaults(cfg)

	return cfg
}

func loadYAMLConfig(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyGeminiDefaults(cfg)
	applyAnalysisDefaults(cfg)
	applyCopyDefaults(cfg)
	applyVideoDefaults(cfg)
	applyAlignDefaults(cfg)
	applySubtitlesDefaults(cfg)
	applyGCSDefaults(cfg)
}

func applyGeminiDefaults(cfg *Config) {
	if cfg.Gemini.AnalysisModel == "" {
		cfg.Gemini.AnalysisModel = defaultAnalysisModel
	}
	if cfg.Gemini.MarketingModel == "" {
		cfg.Gemini.MarketingModel = defaultMarketingModel
	}
	if cfg.Gemini.TTSModel == "" {
		cfg.Gemini.TTSModel = defaultTTSModel
	}
	if cfg.Gemini.TTSVoice == "" {
		cfg.Gemini.TTSVoice = defaultTTSVoice
	}
}

func applyAnalysisDefaults(cfg *Config) {
	if cfg.Analysis.MaxClips == 0 {
		cfg.Analysis.MaxClips = defaultMaxClips
	}
	if cfg.Analysis.MinClipSeconds == 0 {
		cfg.Analysis.MinClipSeconds = defaultMinClipSeconds
	}
	if cfg.Analysis.MaxClipSeconds == 0 {
		cfg.Analysis.MaxClipSeconds = defaultMaxClipSeconds
	}
}

func applyCopyDefaults(cfg *Config) {
	if cfg.Copy.Provider == "" {
		cfg.Copy.Provider = defaultCopyProvider
	}
	if cfg.Copy.GroqModel == "" {
		cfg.Copy.GroqModel = defaultGroqModel
	}
}

func applyVideoDefaults(cfg *Config) {
	if cfg.Video.WorkDir == "" {
		cfg.Video.WorkDir = defaultWorkDir
	}
	if cfg.Video.OutputDir == "" {
		cfg.Video.OutputDir = defaultOutputDir
	}
	if cfg.Video.Resolution == "" {
		cfg.Video.Resolution = defaultResolution
	}
	if cfg.Video.FFmpegPath == "" {
		cfg.Video.FFmpegPath = defaultFFmpegPath
	}
	if cfg.Video.FFprobePath == "" {
		cfg.Video.FFprobePath = defaultFFprobePath
	}
	if cfg.Video.Parallelism == 0 {
		cfg.Video.Parallelism = defaultParallelism
	}
}

func applyAlignDefaults(cfg *Config) {
	if cfg.Align.MinSilenceMs == 0 {
		cfg.Align.MinSilenceMs = defaultMinSilenceMs
	}
	if cfg.Align.SilenceThresholdDB == 0 {
		cfg.Align.SilenceThresholdDB = defaultSilenceThresholdDB
	}
}

func applySubtitlesDefaults(cfg *Config) {
	if cfg.Subtitles.FontName == "" {
		cfg.Subtitles.FontName = defaultSubtitleFont
	}
	if cfg.Subtitles.FontSize == 0 {
		cfg.Subtitles.FontSize = defaultSubtitleSize
	}
	if cfg.Subtitles.PrimaryColor == "" {
		cfg.Subtitles.PrimaryColor = defaultPrimaryColor
	}
	if cfg.Subtitles.HighlightColor == "" {
		cfg.Subtitles.HighlightColor = defaultHighlightColor
	}
	if cfg.Subtitles.OutlineColor == "" {
		cfg.Subtitles.OutlineColor = defaultOutlineColor
	}
	if cfg.Subtitles.OutlineSize == 0 {
		cfg.Subtitles.OutlineSize = defaultOutlineSize
	}
	if cfg.Subtitles.ShadowSize == 0 {
		cfg.Subtitles.ShadowSize = defaultShadowSize
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.Prefix == "" {
		cfg.GCS.Prefix = defaultGCSPrefix
	}
}
