package subtitle

import (
	"bufio"
	"fmt"

	"github.com/fumikura/jimaku/internal/segment"
)

// SRTExporter writes dialogue spans as numbered SubRip blocks.
type SRTExporter struct {
	MaxChars int
	MaxLines int
	Mode     segment.RenderMode
}

func NewSRTExporter(maxChars, maxLines int, mode segment.RenderMode) *SRTExporter {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &SRTExporter{MaxChars: maxChars, MaxLines: maxLines, Mode: mode}
}

// Export writes the spans in order. Spans whose rendered text is empty are
// skipped but still consume a sequence number.
func (e *SRTExporter) Export(spans []segment.Span, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for i, sp := range spans {
			text := wrapContent(sp, e.Mode, e.MaxChars, e.MaxLines)
			if text == "" {
				continue
			}

			if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
				i+1,
				SRTTimecode(sp.Start),
				SRTTimecode(sp.End),
				text,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
