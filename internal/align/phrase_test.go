package align

import (
	"math"
	"testing"
)

func makeTimings(words int, perWord float64) []WordTiming {
	timings := make([]WordTiming, words)
	for i := range timings {
		timings[i] = WordTiming{
			Word:      "w",
			StartTime: float64(i) * perWord,
			EndTime:   float64(i+1) * perWord,
		}
	}
	return timings
}

func TestGroupPhrases(t *testing.T) {
	tests := []struct {
		name        string
		timings     []WordTiming
		lineLengths []int
		wantGroups  int
		wantWords   []int
	}{
		{
			name:        "exactFit",
			timings:     makeTimings(5, 0.4),
			lineLengths: []int{3, 2},
			wantGroups:  2,
			wantWords:   []int{3, 2},
		},
		{
			name:        "timingsRunShort",
			timings:     makeTimings(4, 0.4),
			lineLengths: []int{3, 2, 4},
			wantGroups:  2,
			wantWords:   []int{3, 1},
		},
		{
			name:        "noTimings",
			timings:     nil,
			lineLengths: []int{2, 2},
			wantGroups:  0,
		},
		{
			name:        "zeroLengthLineSkipped",
			timings:     makeTimings(3, 0.5),
			lineLengths: []int{2, 0, 1},
			wantGroups:  2,
			wantWords:   []int{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupPhrases(tt.timings, tt.lineLengths)

			if len(groups) != tt.wantGroups {
				t.Fatalf("got %d groups, want %d", len(groups), tt.wantGroups)
			}
			for i, g := range groups {
				if len(g.Words) != tt.wantWords[i] {
					t.Errorf("group %d: %d words, want %d", i, len(g.Words), tt.wantWords[i])
				}
				if len(g.Words) == 0 {
					t.Errorf("group %d emitted empty", i)
				}
			}
		})
	}
}

func TestGroupPhrasesDisplayWindows(t *testing.T) {
	// Two phrases of 3 and 2 words over 5 timings with a silent gap between.
	timings := []WordTiming{
		{Word: "a", StartTime: 0.0, EndTime: 0.3},
		{Word: "b", StartTime: 0.3, EndTime: 0.6},
		{Word: "c", StartTime: 0.6, EndTime: 0.9},
		{Word: "d", StartTime: 1.5, EndTime: 1.8},
		{Word: "e", StartTime: 1.8, EndTime: 2.1},
	}

	groups := GroupPhrases(timings, []int{3, 2})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	if groups[0].DisplayStart != 0.0 {
		t.Errorf("group 0 display start = %v, want 0", groups[0].DisplayStart)
	}
	// First phrase persists through the silence until the second begins.
	if groups[0].DisplayEnd != groups[1].DisplayStart {
		t.Errorf("group 0 display end = %v, want %v", groups[0].DisplayEnd, groups[1].DisplayStart)
	}
	if groups[1].DisplayStart != 1.5 {
		t.Errorf("group 1 display start = %v, want 1.5", groups[1].DisplayStart)
	}
	// Final phrase ends at its own last word.
	if groups[1].DisplayEnd != 2.1 {
		t.Errorf("group 1 display end = %v, want 2.1", groups[1].DisplayEnd)
	}
}

func TestGroupPhrasesPersistenceAcrossMany(t *testing.T) {
	timings := makeTimings(9, 0.25)
	groups := GroupPhrases(timings, []int{2, 3, 4})

	for i := 0; i < len(groups)-1; i++ {
		if math.Abs(groups[i].DisplayEnd-groups[i+1].DisplayStart) > 1e-9 {
			t.Errorf("group %d display end %v != group %d display start %v",
				i, groups[i].DisplayEnd, i+1, groups[i+1].DisplayStart)
		}
	}
}

func TestLineLengths(t *testing.T) {
	lines := []ScriptLine{
		{Text: "check this out"},
		{Text: "  wow  "},
		{Text: "grab yours today"},
	}

	got := LineLengths(lines)
	want := []int{3, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: length %d, want %d", i, got[i], want[i])
		}
	}
}
