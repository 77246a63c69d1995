package video

import (
	"fmt"
	"strings"

	"clipforge/internal/align"
)

const (
	// LayerBase holds the full phrase text in the neutral style.
	LayerBase = 0
	// LayerHighlight redraws the phrase with one word emphasized. It renders
	// above LayerBase in any ASS compositor.
	LayerHighlight = 1
)

// Event is one renderable overlay interval. Text carries the rendered line,
// including inline color overrides for highlight events.
type Event struct {
	Layer int
	Start float64
	End   float64
	Text  string
}

type SubtitleGenerator struct {
	fontName       string
	fontSize       int
	primaryColor   string
	highlightColor string
	outlineColor   string
	outlineSize    int
	shadowSize     int
	bold           bool
}

type SubtitleOptions struct {
	FontName       string
	FontSize       int
	PrimaryColor   string
	HighlightColor string
	OutlineColor   string
	OutlineSize    int
	ShadowSize     int
	Bold           bool
}

func NewSubtitleGenerator(opts SubtitleOptions) *SubtitleGenerator {
	primaryColor := "&H00FFFFFF" // white default
	if opts.PrimaryColor != "" {
		primaryColor = toASSColor(opts.PrimaryColor)
	}

	highlightColor := "&H0000FFFF" // yellow default
	if opts.HighlightColor != "" {
		highlightColor = toASSColor(opts.HighlightColor)
	}

	outlineColor := "&H00000000" // black default
	if opts.OutlineColor != "" {
		outlineColor = toASSColor(opts.OutlineColor)
	}

	outlineSize := 4
	if opts.OutlineSize > 0 {
		outlineSize = opts.OutlineSize
	}

	shadowSize := 2
	if opts.ShadowSize > 0 {
		shadowSize = opts.ShadowSize
	}

	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 90
	}

	return &SubtitleGenerator{
		fontName:       opts.FontName,
		fontSize:       fontSize,
		primaryColor:   primaryColor,
		highlightColor: highlightColor,
		outlineColor:   outlineColor,
		outlineSize:    outlineSize,
		shadowSize:     shadowSize,
		bold:           opts.Bold,
	}
}

func toASSColor(color string) string {
	if strings.HasPrefix(color, "&H") {
		return color
	}
	color = strings.TrimPrefix(color, "#")
	if len(color) == 6 {
		r := color[0:2]
		g := color[2:4]
		b := color[4:6]
		return fmt.Sprintf("&H00%s%s%s", b, g, r)
	}
	return "&H00FFFFFF"
}

// inlineColor strips the alpha byte so the value fits an override tag.
func inlineColor(assColor string) string {
	hex := strings.TrimPrefix(assColor, "&H")
	if len(hex) == 8 {
		hex = hex[2:]
	}
	return "&H" + hex + "&"
}

// Compose turns phrase groups into a two-layer overlay. The base layer shows
// each full phrase for its display window; the highlight layer redraws the
// whole line once per word with only that word recolored. The emphasized word
// is tracked by position in the line, not by text, so a word form repeated
// within a phrase highlights correctly.
func (g *SubtitleGenerator) Compose(groups []align.PhraseGroup) []Event {
	var events []Event

	for _, group := range groups {
		if len(group.Words) == 0 {
			continue
		}
		events = append(events, Event{
			Layer: LayerBase,
			Start: group.DisplayStart,
			End:   group.DisplayEnd,
			Text:  phraseText(group),
		})
	}

	for _, group := range groups {
		for i, word := range group.Words {
			end := word.EndTime
			if i == len(group.Words)-1 {
				// The last word's highlight persists until the phrase leaves
				// the screen instead of cutting off at the word boundary.
				end = group.DisplayEnd
			}
			events = append(events, Event{
				Layer: LayerHighlight,
				Start: word.StartTime,
				End:   end,
				Text:  g.highlightLine(group, i),
			})
		}
	}

	return events
}

func phraseText(group align.PhraseGroup) string {
	words := make([]string, len(group.Words))
	for i, w := range group.Words {
		words[i] = strings.ToUpper(w.Word)
	}
	return strings.Join(words, " ")
}

func (g *SubtitleGenerator) highlightLine(group align.PhraseGroup, index int) string {
	parts := make([]string, len(group.Words))
	for i, w := range group.Words {
		text := strings.ToUpper(w.Word)
		if i == index {
			parts[i] = fmt.Sprintf("{\\c%s}%s{\\c%s}",
				inlineColor(g.highlightColor), text, inlineColor(g.primaryColor))
		} else {
			parts[i] = text
		}
	}
	return strings.Join(parts, " ")
}

// ToASS serializes overlay events into an Advanced SubStation Alpha document
// sized for vertical 1080x1920 output.
func (g *SubtitleGenerator) ToASS(events []Event) string {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("PlayResX: 1080\n")
	sb.WriteString("PlayResY: 1920\n")
	sb.WriteString("\n")

	boldVal := 0
	if g.bold {
		boldVal = -1
	}

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,%s,%s,%s,&H80000000,%d,0,0,0,100,100,0,0,1,%d,%d,5,50,50,200,1\n",
		g.fontName, g.fontSize, g.primaryColor, g.primaryColor, g.outlineColor, boldVal, g.outlineSize, g.shadowSize))
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, event := range events {
		start := formatASSTime(event.Start)
		end := formatASSTime(event.End)
		sb.WriteString(fmt.Sprintf("Dialogue: %d,%s,%s,Default,,0,0,0,,%s\n", event.Layer, start, end, event.Text))
	}

	return sb.String()
}

func formatASSTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	centis := int((seconds - float64(int(seconds))) * 100)

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}
