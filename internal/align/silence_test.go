package align

import (
	"bytes"
	"encoding/binary"
	"testing"
)

const testSampleRate = 8000

// makeWAV wraps 16-bit mono PCM samples in a minimal RIFF header.
func makeWAV(t *testing.T, samples []int16) []byte {
	t.Helper()

	var data bytes.Buffer
	for _, s := range samples {
		if err := binary.Write(&data, binary.LittleEndian, s); err != nil {
			t.Fatalf("write sample: %v", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(testSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(testSampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// tone appends ms milliseconds of a loud square wave.
func tone(samples []int16, ms int) []int16 {
	n := testSampleRate / 1000 * ms
	for i := 0; i < n; i++ {
		v := int16(16000)
		if i%2 == 1 {
			v = -16000
		}
		samples = append(samples, v)
	}
	return samples
}

// quiet appends ms milliseconds of silence.
func quiet(samples []int16, ms int) []int16 {
	return append(samples, make([]int16, testSampleRate/1000*ms)...)
}

func TestSegmentAllSilent(t *testing.T) {
	wav := makeWAV(t, quiet(nil, 1000))

	ranges, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(ranges) != 0 {
		t.Errorf("expected no ranges for silent audio, got %v", ranges)
	}
}

func TestSegmentContinuousTone(t *testing.T) {
	wav := makeWAV(t, tone(nil, 500))

	ranges, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if ranges[0].StartMs != 0 || ranges[0].EndMs != 500 {
		t.Errorf("range = %v, want [0,500)", ranges[0])
	}
}

func TestSegmentToneWithGap(t *testing.T) {
	samples := tone(nil, 400)
	samples = quiet(samples, 300)
	samples = tone(samples, 200)
	wav := makeWAV(t, samples)

	ranges, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %v", len(ranges), ranges)
	}

	if ranges[0].StartMs != 0 || ranges[0].EndMs != 400 {
		t.Errorf("range 0 = %v, want [0,400)", ranges[0])
	}
	if ranges[1].StartMs != 700 || ranges[1].EndMs != 900 {
		t.Errorf("range 1 = %v, want [700,900)", ranges[1])
	}
}

func TestSegmentShortGapDoesNotSplit(t *testing.T) {
	samples := tone(nil, 300)
	samples = quiet(samples, 100) // below the 200ms minimum
	samples = tone(samples, 300)
	wav := makeWAV(t, samples)

	ranges, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d: %v", len(ranges), ranges)
	}
	if ranges[0].StartMs != 0 || ranges[0].EndMs != 700 {
		t.Errorf("range = %v, want [0,700)", ranges[0])
	}
}

func TestSegmentChronologicalNonOverlapping(t *testing.T) {
	samples := tone(nil, 250)
	samples = quiet(samples, 400)
	samples = tone(samples, 150)
	samples = quiet(samples, 250)
	samples = tone(samples, 100)
	wav := makeWAV(t, samples)

	ranges, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	for i, r := range ranges {
		if r.StartMs >= r.EndMs {
			t.Errorf("range %d not positive: %v", i, r)
		}
		if i > 0 && r.StartMs < ranges[i-1].EndMs {
			t.Errorf("range %d overlaps previous: %v after %v", i, r, ranges[i-1])
		}
	}
}

func TestSegmentDeterministic(t *testing.T) {
	samples := tone(nil, 300)
	samples = quiet(samples, 250)
	samples = tone(samples, 300)
	wav := makeWAV(t, samples)

	first, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	second, err := Segment(wav, DefaultMinSilenceMs, DefaultSilenceThresholdDB)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("non-deterministic range count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("range %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSegmentRejectsGarbage(t *testing.T) {
	if _, err := Segment([]byte("not a wav"), DefaultMinSilenceMs, DefaultSilenceThresholdDB); err == nil {
		t.Error("expected decode error for garbage input")
	}
}
