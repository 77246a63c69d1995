// Package app wires the collaborators together and runs the end-to-end
// pipeline: source video in, narrated vertical micro-clips out.
package app

import (
	"context"

	"clipforge/internal/clip"
	"clipforge/internal/llm"
	"clipforge/internal/storage"
	"clipforge/internal/tts"
	"clipforge/internal/video"
	"clipforge/pkg/config"
)

// Analyzer plans micro-clips from a compressed source video.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, videoPath string) ([]clip.MicroClip, error)
}

// SourceFetcher resolves a product page URL into a local MP4.
type SourceFetcher interface {
	Fetch(ctx context.Context, pageURL, outputPath string) error
}

// VideoEditor covers the ffmpeg operations the pipeline needs. Satisfied by
// video.FFmpeg.
type VideoEditor interface {
	CompressCrop(ctx context.Context, inputPath, outputPath string) error
	Cut(ctx context.Context, inputPath string, start, end float64, outputPath string) error
	Probe(ctx context.Context, path string) (float64, error)
	MergeAudio(ctx context.Context, videoPath string, wav []byte, outputPath string) error
	BurnSubtitles(ctx context.Context, videoPath, assContent, outputPath string) error
	Concat(ctx context.Context, clipPaths []string, outputPath string) error
}

type Service struct {
	cfg        *config.Config
	fetcher    SourceFetcher
	analyzer   Analyzer
	tts        tts.Provider
	editor     VideoEditor
	aligner    *video.Aligner
	copywriter llm.CopyWriter
	storage    *storage.LocalStorage
	archiver   storage.Archiver
}

type ServiceOptions struct {
	Config     *config.Config
	Fetcher    SourceFetcher
	Analyzer   Analyzer
	TTS        tts.Provider
	Editor     VideoEditor
	Aligner    *video.Aligner
	CopyWriter llm.CopyWriter
	Storage    *storage.LocalStorage
	Archiver   storage.Archiver
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:        opts.Config,
		fetcher:    opts.Fetcher,
		analyzer:   opts.Analyzer,
		tts:        opts.TTS,
		editor:     opts.Editor,
		aligner:    opts.Aligner,
		copywriter: opts.CopyWriter,
		storage:    opts.Storage,
		archiver:   opts.Archiver,
	}
}

func (s *Service) Config() *config.Config { return s.cfg }
