package gemini

import (
	"testing"
)

func TestParseClips(t *testing.T) {
	raw := `[
		{
			"clip_title": "The Big Reveal",
			"start_time": "0:01:30",
			"end_time": "0:02:05",
			"description": "The moment everything clicks.",
			"voice_style_prompt": "excited, fast-paced",
			"tts_sync_script": [
				{"start_s": 0, "end_s": 4.5, "text": "Watch what happens next"},
				{"start_s": 4.5, "end_s": 10, "text": "because nobody saw this coming"}
			]
		}
	]`

	clips, err := ParseClips([]byte(raw))
	if err != nil {
		t.Fatalf("ParseClips() error = %v", err)
	}
	if len(clips) != 1 {
		t.Fatalf("got %d clips, want 1", len(clips))
	}

	c := clips[0]
	if c.Title != "The Big Reveal" {
		t.Errorf("Title = %q", c.Title)
	}
	start, end, err := c.Bounds()
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if start != 90 || end != 125 {
		t.Errorf("Bounds() = (%v, %v), want (90, 125)", start, end)
	}
	if len(c.Script) != 2 {
		t.Fatalf("got %d script lines, want 2", len(c.Script))
	}
	if c.Script[1].Start != 4.5 || c.Script[1].End != 10 {
		t.Errorf("Script[1] = [%v, %v], want [4.5, 10]", c.Script[1].Start, c.Script[1].End)
	}
	if got := c.ScriptText(); got != "Watch what happens next because nobody saw this coming" {
		t.Errorf("ScriptText() = %q", got)
	}
}

func TestParseClipsDropsInvalid(t *testing.T) {
	raw := `[
		{
			"clip_title": "Backwards",
			"start_time": "0:02:00",
			"end_time": "0:01:00",
			"description": "end before start",
			"voice_style_prompt": "calm",
			"tts_sync_script": [{"start_s": 0, "end_s": 1, "text": "hello"}]
		},
		{
			"clip_title": "Fine",
			"start_time": "0:00:10",
			"end_time": "0:00:40",
			"description": "valid",
			"voice_style_prompt": "calm",
			"tts_sync_script": [{"start_s": 0, "end_s": 2, "text": "still here"}]
		}
	]`

	clips, err := ParseClips([]byte(raw))
	if err != nil {
		t.Fatalf("ParseClips() error = %v", err)
	}
	if len(clips) != 1 {
		t.Fatalf("got %d clips, want 1", len(clips))
	}
	if clips[0].Title != "Fine" {
		t.Errorf("kept clip = %q, want %q", clips[0].Title, "Fine")
	}
}

func TestParseClipsAllInvalid(t *testing.T) {
	raw := `[
		{
			"clip_title": "",
			"start_time": "0:00:00",
			"end_time": "0:00:10",
			"description": "no title",
			"voice_style_prompt": "calm",
			"tts_sync_script": [{"start_s": 0, "end_s": 1, "text": "hi"}]
		}
	]`

	if _, err := ParseClips([]byte(raw)); err == nil {
		t.Error("expected error when no clip survives validation")
	}
}

func TestParseClipsMalformedJSON(t *testing.T) {
	if _, err := ParseClips([]byte(`{"not": "an array"`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
