package subtitle

import (
	"bufio"
	"strings"

	"github.com/fumikura/jimaku/internal/segment"
)

// LRCExporter writes lyric lines in plain LRC form:
// [lineStart]word1[word1End]word2[word2End]...
// A translated line, when present, follows on its own line with the same
// start timestamp, the usual bilingual LRC convention.
type LRCExporter struct{}

func (LRCExporter) Export(lines []segment.LyricLine, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for _, line := range lines {
			if strings.TrimSpace(line.Text()) == "" {
				continue
			}

			if _, err := w.WriteString("[" + LRCTimestamp(line.Start) + "]"); err != nil {
				return err
			}
			for _, word := range line.Words {
				if _, err := w.WriteString(word.Text + "[" + LRCTimestamp(word.End) + "]"); err != nil {
					return err
				}
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}

			if err := writeLRCTranslation(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// EnhancedLRCExporter writes word-synchronized LRC:
// [lineStart]<word1Start>word1<word2Start>word2...
type EnhancedLRCExporter struct{}

func (EnhancedLRCExporter) Export(lines []segment.LyricLine, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for _, line := range lines {
			if strings.TrimSpace(line.Text()) == "" {
				continue
			}

			if _, err := w.WriteString("[" + LRCTimestamp(line.Start) + "]"); err != nil {
				return err
			}
			for _, word := range line.Words {
				if _, err := w.WriteString("<" + LRCTimestamp(word.Start) + ">" + word.Text); err != nil {
					return err
				}
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}

			if err := writeLRCTranslation(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeLRCTranslation(w *bufio.Writer, line segment.LyricLine) error {
	if strings.TrimSpace(line.Translation) == "" {
		return nil
	}
	_, err := w.WriteString("[" + LRCTimestamp(line.Start) + "]" + line.Translation + "\n")
	return err
}
