package video

import (
	"context"
	"fmt"
	"log/slog"

	"clipforge/internal/align"
)

// AudioProcessor is the external waveform engine the aligner delegates to for
// probing and tempo stretching. Implemented by FFmpeg.
type AudioProcessor interface {
	AudioDuration(ctx context.Context, wav []byte) (float64, error)
	StretchAudio(ctx context.Context, wav []byte, steps []align.TempoStep) ([]byte, error)
}

// Aligner runs the per-clip alignment pipeline: plan tempo, stretch the audio
// to the clip duration, segment silence, allocate word timings, group phrases,
// and composite the subtitle overlay.
type Aligner struct {
	audio        AudioProcessor
	subtitleGen  *SubtitleGenerator
	minSilenceMs int
	thresholdDB  float64
}

type AlignerOptions struct {
	MinSilenceMs       int
	SilenceThresholdDB float64
}

// AlignResult is one clip's alignment output. When Captioned is false the
// audio is still valid and duration-matched; Reason records why the overlay
// was skipped.
type AlignResult struct {
	Audio     []byte
	Factor    float64
	Timings   []align.WordTiming
	Groups    []align.PhraseGroup
	Events    []Event
	ASS       string
	Captioned bool
	Reason    error
}

func NewAligner(audio AudioProcessor, subtitleGen *SubtitleGenerator, opts AlignerOptions) *Aligner {
	minSilenceMs := opts.MinSilenceMs
	if minSilenceMs <= 0 {
		minSilenceMs = align.DefaultMinSilenceMs
	}
	thresholdDB := opts.SilenceThresholdDB
	if thresholdDB == 0 {
		thresholdDB = align.DefaultSilenceThresholdDB
	}
	return &Aligner{
		audio:        audio,
		subtitleGen:  subtitleGen,
		minSilenceMs: minSilenceMs,
		thresholdDB:  thresholdDB,
	}
}

// Align forces the narration audio to targetSec and derives the subtitle
// overlay from the adjusted waveform. Missing captions degrade the result
// rather than failing it; duration and decode problems fail the clip.
func (a *Aligner) Align(ctx context.Context, lines []align.ScriptLine, wavData []byte, targetSec float64) (*AlignResult, error) {
	currentSec, err := a.audio.AudioDuration(ctx, wavData)
	if err != nil {
		return nil, fmt.Errorf("probe audio duration: %w", err)
	}

	steps, err := align.PlanTempo(currentSec, targetSec)
	if err != nil {
		return nil, err
	}

	adjusted, err := a.audio.StretchAudio(ctx, wavData, steps)
	if err != nil {
		return nil, fmt.Errorf("stretch audio: %w", err)
	}

	result := &AlignResult{
		Audio:  adjusted,
		Factor: align.OverallFactor(steps),
	}

	ranges, err := align.Segment(adjusted, a.minSilenceMs, a.thresholdDB)
	if err != nil {
		return nil, fmt.Errorf("segment silence: %w", err)
	}
	if len(ranges) == 0 {
		slog.Warn("No non-silent audio found, skipping captions")
		result.Reason = align.ErrEmptyAudio
		return result, nil
	}

	var words []string
	for _, line := range lines {
		words = append(words, align.Words(line.Text)...)
	}

	timings := align.Allocate(ranges, words)
	if len(timings) == 0 {
		slog.Warn("No word timings derivable, skipping captions")
		result.Reason = align.ErrEmptyAudio
		return result, nil
	}
	if len(timings) < len(words) {
		slog.Warn("Word timings ran short, later phrases will be dropped",
			"timings", len(timings), "words", len(words))
		result.Reason = align.ErrInsufficientTimings
	}

	groups := align.GroupPhrases(timings, align.LineLengths(lines))
	if len(groups) == 0 {
		result.Reason = align.ErrInsufficientTimings
		return result, nil
	}

	result.Timings = timings
	result.Groups = groups
	result.Events = a.subtitleGen.Compose(groups)
	result.ASS = a.subtitleGen.ToASS(result.Events)
	result.Captioned = true
	return result, nil
}
