package subtitle

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fumikura/jimaku/internal/segment"
)

const assHeader = `[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, BorderStyle, Outline, Shadow, Alignment, MarginV
Style: Default,%s,%d,&H00FFFFFF,&H00000000,&H80000000,0,1,2,0,2,20

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// ASSExporter writes dialogue spans as a styled Advanced SubStation script.
type ASSExporter struct {
	Style    ASSStyle
	MaxChars int
	MaxLines int
	Mode     segment.RenderMode
}

func NewASSExporter(style ASSStyle, maxChars, maxLines int, mode segment.RenderMode) *ASSExporter {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &ASSExporter{Style: style, MaxChars: maxChars, MaxLines: maxLines, Mode: mode}
}

func (e *ASSExporter) Export(spans []segment.Span, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		if _, err := fmt.Fprintf(w, assHeader,
			e.Style.PlayResX,
			e.Style.PlayResY,
			e.Style.Font,
			e.Style.FontSize,
		); err != nil {
			return err
		}

		for _, sp := range spans {
			text := wrapContent(sp, e.Mode, e.MaxChars, e.MaxLines)
			if text == "" {
				continue
			}

			if _, err := fmt.Fprintf(w, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
				ASSTimecode(sp.Start),
				ASSTimecode(sp.End),
				escapeASSText(text),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// escapeASSText maps line breaks to \N and escapes literal braces, which
// renderers would otherwise read as override tags.
func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\n", `\N`)
	text = strings.ReplaceAll(text, "{", `\{`)
	return strings.ReplaceAll(text, "}", `\}`)
}
