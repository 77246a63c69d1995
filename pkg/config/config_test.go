package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Gemini.AnalysisModel != "gemini-2.5-flash" {
		t.Errorf("AnalysisModel = %q", cfg.Gemini.AnalysisModel)
	}
	if cfg.Gemini.TTSVoice != "Kore" {
		t.Errorf("TTSVoice = %q", cfg.Gemini.TTSVoice)
	}
	if cfg.Analysis.MaxClips != 5 {
		t.Errorf("MaxClips = %d", cfg.Analysis.MaxClips)
	}
	if cfg.Video.Resolution != "1080x1920" {
		t.Errorf("Resolution = %q", cfg.Video.Resolution)
	}
	if cfg.Video.Parallelism != 2 {
		t.Errorf("Parallelism = %d", cfg.Video.Parallelism)
	}
	if cfg.Align.MinSilenceMs != 200 {
		t.Errorf("MinSilenceMs = %d", cfg.Align.MinSilenceMs)
	}
	if cfg.Align.SilenceThresholdDB != -40.0 {
		t.Errorf("SilenceThresholdDB = %v", cfg.Align.SilenceThresholdDB)
	}
	if cfg.Subtitles.HighlightColor != "#FFFF00" {
		t.Errorf("HighlightColor = %q", cfg.Subtitles.HighlightColor)
	}
	if cfg.Copy.Provider != "gemini" {
		t.Errorf("Copy.Provider = %q", cfg.Copy.Provider)
	}
}

func TestLoadFromYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
gemini:
  analysis_model: gemini-exp
video:
  work_dir: /tmp/clipwork
  parallelism: 4
align:
  min_silence_ms: 150
copy:
  provider: groq
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFrom(path)

	if cfg.Gemini.AnalysisModel != "gemini-exp" {
		t.Errorf("AnalysisModel = %q", cfg.Gemini.AnalysisModel)
	}
	if cfg.Video.WorkDir != "/tmp/clipwork" {
		t.Errorf("WorkDir = %q", cfg.Video.WorkDir)
	}
	if cfg.Video.Parallelism != 4 {
		t.Errorf("Parallelism = %d", cfg.Video.Parallelism)
	}
	if cfg.Align.MinSilenceMs != 150 {
		t.Errorf("MinSilenceMs = %d", cfg.Align.MinSilenceMs)
	}
	if cfg.Copy.Provider != "groq" {
		t.Errorf("Copy.Provider = %q", cfg.Copy.Provider)
	}
	// untouched sections still get defaults
	if cfg.Gemini.MarketingModel != "gemini-2.0-flash-lite" {
		t.Errorf("MarketingModel = %q", cfg.Gemini.MarketingModel)
	}
	if cfg.Video.OutputDir != "./output" {
		t.Errorf("OutputDir = %q", cfg.Video.OutputDir)
	}
}

func TestLoadReadsEnvKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GCS_BUCKET", "my-bucket")

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.GCSBucket != "my-bucket" {
		t.Errorf("GCSBucket = %q", cfg.GCSBucket)
	}
}
