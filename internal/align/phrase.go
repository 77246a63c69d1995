package align

import "strings"

// Words splits narration text into the words that receive timing intervals.
// All stages split identically so line lengths and allocations stay in step.
func Words(text string) []string {
	return strings.Fields(text)
}

// GroupPhrases walks the flat word timings and re-forms the script's phrase
// boundaries, consuming lineLengths[i] words for phrase i. A phrase that
// receives no words (timings ran short) is dropped rather than emitted empty.
//
// Each group's display window starts at its first word and ends where the next
// group begins, so the phrase text and the final highlighted word persist
// through silent gaps instead of cutting off. The last group ends at its own
// last word.
func GroupPhrases(timings []WordTiming, lineLengths []int) []PhraseGroup {
	var groups []PhraseGroup
	cursor := 0

	for _, length := range lineLengths {
		remaining := len(timings) - cursor
		if remaining <= 0 {
			break
		}
		if length > remaining {
			length = remaining
		}
		if length <= 0 {
			continue
		}

		words := timings[cursor : cursor+length]
		groups = append(groups, PhraseGroup{
			Words:        words,
			DisplayStart: words[0].StartTime,
			DisplayEnd:   words[length-1].EndTime,
		})
		cursor += length
	}

	for i := 0; i < len(groups)-1; i++ {
		groups[i].DisplayEnd = groups[i+1].DisplayStart
	}

	return groups
}

// LineLengths returns the word count of every script line, in order.
func LineLengths(lines []ScriptLine) []int {
	lengths := make([]int, len(lines))
	for i, line := range lines {
		lengths[i] = len(Words(line.Text))
	}
	return lengths
}
