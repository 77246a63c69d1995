package align

import "math"

// Allocate distributes words across non-silent ranges proportionally to each
// range's share of the total audible duration, then divides every range evenly
// among the words assigned to it. The final range absorbs any words left over
// by rounding, so when at least one range exists the output covers every input
// word exactly once, in order. An empty range slice yields an empty result.
func Allocate(ranges []Range, words []string) []WordTiming {
	if len(ranges) == 0 || len(words) == 0 {
		return nil
	}

	totalMs := 0
	for _, r := range ranges {
		totalMs += r.Duration()
	}
	if totalMs <= 0 {
		return nil
	}

	timings := make([]WordTiming, 0, len(words))
	cursor := 0

	for i, r := range ranges {
		count := int(math.Round(float64(r.Duration()) / float64(totalMs) * float64(len(words))))
		if count > len(words)-cursor {
			count = len(words) - cursor
		}
		if i == len(ranges)-1 {
			// Rounding can leave words unassigned; the last range takes them.
			count = len(words) - cursor
		}
		if count == 0 {
			continue
		}

		perWordMs := float64(r.Duration()) / float64(count)
		at := float64(r.StartMs)
		for _, word := range words[cursor : cursor+count] {
			timings = append(timings, WordTiming{
				Word:      word,
				StartTime: at / 1000.0,
				EndTime:   (at + perWordMs) / 1000.0,
			})
			at += perWordMs
		}
		cursor += count
	}

	return timings
}
