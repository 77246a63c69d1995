package align

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// DefaultMinSilenceMs treats a pause of 200ms or longer as a gap.
	DefaultMinSilenceMs = 200
	// DefaultSilenceThresholdDB treats signal quieter than -40 dBFS as silence.
	DefaultSilenceThresholdDB = -40.0
)

// Segment partitions a PCM WAV waveform into chronologically ordered,
// non-overlapping ranges of audible signal. A stretch of audio is silent when
// its per-millisecond RMS level stays at or below thresholdDB for at least
// minSilenceMs. An entirely silent waveform yields an empty slice, not an
// error; callers treat that as "no timings derivable".
func Segment(wavData []byte, minSilenceMs int, thresholdDB float64) ([]Range, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavData))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("decode wav: invalid file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("decode wav: missing format")
	}

	levels := millisecondLevels(buf, buf.SourceBitDepth)
	return nonSilentRanges(levels, minSilenceMs, thresholdDB), nil
}

// millisecondLevels reduces an interleaved PCM buffer to one RMS level in
// dBFS per millisecond. Multi-channel input is downmixed by averaging frames.
func millisecondLevels(buf *audio.IntBuffer, bitDepth int) []float64 {
	samples := buf.Data
	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}

	framesPerMs := buf.Format.SampleRate / 1000
	if framesPerMs < 1 {
		framesPerMs = 1
	}

	fullScale := float64(int64(1) << (bitDepth - 1))
	frames := len(samples) / channels
	totalMs := frames / framesPerMs

	levels := make([]float64, totalMs)
	for ms := 0; ms < totalMs; ms++ {
		var sum float64
		for f := ms * framesPerMs; f < (ms+1)*framesPerMs; f++ {
			var v float64
			for ch := 0; ch < channels; ch++ {
				v += float64(samples[f*channels+ch])
			}
			v /= float64(channels)
			sum += v * v
		}
		rms := math.Sqrt(sum / float64(framesPerMs))
		if rms == 0 {
			levels[ms] = math.Inf(-1)
		} else {
			levels[ms] = 20 * math.Log10(rms/fullScale)
		}
	}
	return levels
}

// nonSilentRanges returns the complement of every silent run that is at least
// minSilenceMs long. Shorter quiet stretches stay inside their surrounding
// audible range.
func nonSilentRanges(levels []float64, minSilenceMs int, thresholdDB float64) []Range {
	if len(levels) == 0 {
		return nil
	}
	if minSilenceMs < 1 {
		minSilenceMs = 1
	}

	var silent []Range
	runStart := -1
	for ms, level := range levels {
		if level <= thresholdDB {
			if runStart < 0 {
				runStart = ms
			}
			continue
		}
		if runStart >= 0 {
			if ms-runStart >= minSilenceMs {
				silent = append(silent, Range{StartMs: runStart, EndMs: ms})
			}
			runStart = -1
		}
	}
	if runStart >= 0 && len(levels)-runStart >= minSilenceMs {
		silent = append(silent, Range{StartMs: runStart, EndMs: len(levels)})
	}

	var ranges []Range
	cursor := 0
	for _, s := range silent {
		if s.StartMs > cursor {
			ranges = append(ranges, Range{StartMs: cursor, EndMs: s.StartMs})
		}
		cursor = s.EndMs
	}
	if cursor < len(levels) {
		ranges = append(ranges, Range{StartMs: cursor, EndMs: len(levels)})
	}
	return ranges
}
