package clip

import (
	"math"
	"testing"

	"clipforge/internal/align"
)

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		name    string
		tc      string
		want    float64
		wantErr bool
	}{
		{name: "simple", tc: "0:01:23", want: 83},
		{name: "hours", tc: "1:02:03", want: 3723},
		{name: "fractional", tc: "0:00:01.5", want: 1.5},
		{name: "padded", tc: " 0:00:10 ", want: 10},
		{name: "missingPart", tc: "01:23", wantErr: true},
		{name: "garbage", tc: "a:b:c", wantErr: true},
		{name: "empty", tc: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimecode(tt.tc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimecode(%q) expected error", tt.tc)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimecode(%q) error: %v", tt.tc, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseTimecode(%q) = %v, want %v", tt.tc, got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	c := MicroClip{StartTime: "0:00:10", EndTime: "0:00:25"}
	start, end, err := c.Bounds()
	if err != nil {
		t.Fatalf("Bounds() error: %v", err)
	}
	if start != 10 || end != 25 {
		t.Errorf("Bounds() = %v, %v, want 10, 25", start, end)
	}

	c = MicroClip{StartTime: "0:00:25", EndTime: "0:00:10"}
	if _, _, err := c.Bounds(); err == nil {
		t.Error("expected error for inverted bounds")
	}
}

func TestScriptText(t *testing.T) {
	c := MicroClip{Script: []align.ScriptLine{
		{Text: "Check this out"},
		{Text: "  "},
		{Text: "Grab yours today"},
	}}

	if got := c.ScriptText(); got != "Check this out Grab yours today" {
		t.Errorf("ScriptText() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := MicroClip{
		Title:     "Great feature",
		StartTime: "0:00:05",
		EndTime:   "0:00:12",
		Script:    []align.ScriptLine{{Text: "Look at this"}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name string
		clip MicroClip
	}{
		{
			name: "noTitle",
			clip: MicroClip{StartTime: "0:00:05", EndTime: "0:00:12", Script: []align.ScriptLine{{Text: "x"}}},
		},
		{
			name: "badBounds",
			clip: MicroClip{Title: "t", StartTime: "0:00:12", EndTime: "0:00:05", Script: []align.ScriptLine{{Text: "x"}}},
		},
		{
			name: "emptyScript",
			clip: MicroClip{Title: "t", StartTime: "0:00:05", EndTime: "0:00:12", Script: []align.ScriptLine{{Text: "   "}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.clip.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
