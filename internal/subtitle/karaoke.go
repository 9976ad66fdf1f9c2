package subtitle

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fumikura/jimaku/internal/segment"
)

// minimum inter-word silence that gets its own {\k} gap tag
const karaokeGapFloor = 0.01

const karaokeHeader = `[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
Timer: 100.0000

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Karaoke,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,1,2,0,8,10,10,20,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// KaraokeASSExporter writes lyric lines as an ASS script whose {\k} tags
// drive a progressive fill. Tag units are centiseconds and accumulate
// within each line.
type KaraokeASSExporter struct {
	Style ASSStyle
}

func NewKaraokeASSExporter(style ASSStyle) *KaraokeASSExporter {
	return &KaraokeASSExporter{Style: style}
}

func (e *KaraokeASSExporter) Export(lines []segment.LyricLine, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		if _, err := fmt.Fprintf(w, karaokeHeader,
			e.Style.PlayResX,
			e.Style.PlayResY,
			e.Style.Font,
			e.Style.FontSize,
		); err != nil {
			return err
		}

		for _, line := range lines {
			if strings.TrimSpace(line.Text()) == "" {
				continue
			}

			if _, err := fmt.Fprintf(w, "Dialogue: 0,%s,%s,Karaoke,,0,0,0,,%s\n",
				ASSTimecode(line.Start),
				ASSTimecode(line.End),
				buildKaraokeText(line),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// buildKaraokeText walks the line's words in order, emitting a silent gap
// tag for any inter-word pause over the floor, then a tag sized to each
// word's own duration.
func buildKaraokeText(line segment.LyricLine) string {
	var b strings.Builder
	current := line.Start

	for _, word := range line.Words {
		if gap := word.Start - current; gap > karaokeGapFloor {
			fmt.Fprintf(&b, `{\k%d}`, KaraokeCentis(gap))
		}
		fmt.Fprintf(&b, `{\k%d}%s`, KaraokeCentis(word.Duration()), word.Text)
		current = word.End
	}

	return b.String()
}
