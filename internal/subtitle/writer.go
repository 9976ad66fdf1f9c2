// Package subtitle serializes timed text units into subtitle and lyric
// file formats: SRT, styled ASS, LRC, word-synchronized LRC, and karaoke ASS.
package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fumikura/jimaku/internal/segment"
	"github.com/fumikura/jimaku/internal/textfmt"
)

// Display defaults shared by the dialogue exporters.
const (
	DefaultMaxChars = 18
	DefaultMaxLines = 2
)

// ASSStyle holds the header placeholders for the styled formats.
type ASSStyle struct {
	PlayResX int
	PlayResY int
	Font     string
	FontSize int
}

// DefaultASSStyle returns the dialogue style defaults.
func DefaultASSStyle() ASSStyle {
	return ASSStyle{
		PlayResX: 1920,
		PlayResY: 1080,
		Font:     "Noto Sans CJK SC",
		FontSize: 54,
	}
}

// DefaultKaraokeStyle returns the karaoke style defaults. Karaoke lines sit
// at the top of the frame and render slightly larger.
func DefaultKaraokeStyle() ASSStyle {
	s := DefaultASSStyle()
	s.FontSize = 60
	return s
}

// wrapContent renders a span's text for the given mode with each language
// wrapped on its own budget. Bilingual spans stack the wrapped translation
// above the wrapped original, so they can use up to twice maxLines.
func wrapContent(sp segment.Span, mode segment.RenderMode, maxChars, maxLines int) string {
	if mode != segment.RenderBoth || sp.Secondary == "" {
		return textfmt.Wrap(sp.Content(mode), maxChars, maxLines)
	}

	sec := textfmt.Wrap(sp.Secondary, maxChars, maxLines)
	pri := textfmt.Wrap(sp.Primary, maxChars, maxLines)
	switch {
	case sec == "":
		return pri
	case pri == "":
		return sec
	}
	return sec + "\n" + pri
}

// writeFile opens the destination, hands a buffered writer to build, and
// flushes and closes on every exit path. A failed build may leave a partial
// file behind; the error is reported, not masked.
func writeFile(path string, build func(w *bufio.Writer) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	w := bufio.NewWriter(file)
	if err := build(w); err != nil {
		return err
	}
	return w.Flush()
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
