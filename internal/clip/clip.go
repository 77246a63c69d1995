// Package clip holds the micro-clip plan produced by video analysis.
package clip

import (
	"fmt"
	"strconv"
	"strings"

	"clipforge/internal/align"
)

// MicroClip is one planned output segment: where to cut the source, what the
// narration says, and how the voice should sound. Start and end arrive from
// the analysis model as H:MM:SS timecodes.
type MicroClip struct {
	Title            string
	StartTime        string
	EndTime          string
	Description      string
	VoiceStylePrompt string
	Script           []align.ScriptLine
}

// ScriptText joins all narration lines into the text handed to speech
// synthesis.
func (c MicroClip) ScriptText() string {
	parts := make([]string, 0, len(c.Script))
	for _, line := range c.Script {
		text := strings.TrimSpace(line.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Bounds parses the clip's timecodes into seconds.
func (c MicroClip) Bounds() (float64, float64, error) {
	start, err := ParseTimecode(c.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	end, err := ParseTimecode(c.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: clip [%s, %s]", align.ErrInvalidDuration, c.StartTime, c.EndTime)
	}
	return start, end, nil
}

// Validate rejects clips the pipeline cannot process.
func (c MicroClip) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("clip has no title")
	}
	if _, _, err := c.Bounds(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ScriptText()) == "" {
		return fmt.Errorf("clip %q has no narration script", c.Title)
	}
	return nil
}

// ParseTimecode converts an H:MM:SS timecode to seconds. Fractional seconds
// are accepted.
func ParseTimecode(tc string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(tc), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timecode %q", tc)
	}

	var total float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("malformed timecode %q", tc)
		}
		total = total*60 + v
	}
	return total, nil
}
