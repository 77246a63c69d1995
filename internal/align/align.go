// Package align computes authoritative word-level timing for a narration
// script from the synthesized speech waveform. The nominal timings delivered
// with the script are advisory only; everything downstream (subtitle layers,
// highlight windows) is derived from the intervals produced here.
package align

import "errors"

var (
	// ErrEmptyAudio marks a waveform in which no non-silent range was found.
	// Callers degrade to uncaptioned output instead of failing the clip.
	ErrEmptyAudio = errors.New("no non-silent audio detected")

	// ErrInsufficientTimings marks an allocation that produced fewer word
	// timings than the script requires. Affected phrases are dropped.
	ErrInsufficientTimings = errors.New("fewer word timings than script words")

	// ErrInvalidDuration marks an unusable clip duration. Fatal for the clip.
	ErrInvalidDuration = errors.New("invalid duration")
)

// WordTiming is one word's placement in the adjusted audio, in seconds.
type WordTiming struct {
	Word      string
	StartTime float64
	EndTime   float64
}

// ScriptLine is one narration phrase as authored by the analysis model.
// Start and End carry the model's nominal timing and are not trusted.
type ScriptLine struct {
	Start float64
	End   float64
	Text  string
}

// Range is a span of audible signal in integer milliseconds.
type Range struct {
	StartMs int
	EndMs   int
}

// Duration returns the range length in milliseconds.
func (r Range) Duration() int {
	return r.EndMs - r.StartMs
}

// PhraseGroup binds a script line to its realized word timings.
// DisplayEnd extends to the next group's DisplayStart so the phrase (and the
// last word's highlight) persists across silent gaps between phrases.
type PhraseGroup struct {
	Words        []WordTiming
	DisplayStart float64
	DisplayEnd   float64
}
