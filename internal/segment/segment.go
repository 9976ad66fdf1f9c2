// Package segment turns timestamped recognizer output into timed text units:
// dialogue spans for subtitles and lyric lines for karaoke tracks.
package segment

import (
	"fmt"
	"strings"
)

// Segments whose no-speech probability meets this threshold are skipped by
// both segmentation policies.
const NoSpeechThreshold = 0.6

// Token is a single recognized word or sub-word unit.
type Token struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (t Token) valid() bool {
	return t.Start >= 0 && t.End >= t.Start
}

// Segment is one recognizer segment, optionally carrying word-level tokens.
// Absence of word tokens means segment-granularity fallback.
type Segment struct {
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Text         string  `json:"text"`
	NoSpeechProb float64 `json:"no_speech_prob"`
	Words        []Token `json:"words,omitempty"`
}

func (s Segment) valid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// RenderMode selects which text a dialogue exporter renders.
type RenderMode int

const (
	RenderBoth RenderMode = iota
	RenderPrimaryOnly
	RenderSecondaryOnly
)

// ParseRenderMode maps a CLI flag value to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "bilingual":
		return RenderBoth, nil
	case "primary", "original":
		return RenderPrimaryOnly, nil
	case "secondary", "translation":
		return RenderSecondaryOnly, nil
	default:
		return RenderBoth, fmt.Errorf(
			"unsupported render mode %q: use both, primary, or secondary",
			s,
		)
	}
}

// Span is a single timed dialogue event. Primary holds the recognized text;
// Secondary holds an optional translation populated after segmentation.
type Span struct {
	Start     float64
	End       float64
	Primary   string
	Secondary string
}

func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Content returns the text to render for the given mode. A span without a
// translation always falls back to its primary text.
func (s Span) Content(mode RenderMode) string {
	if s.Secondary == "" {
		return s.Primary
	}
	switch mode {
	case RenderPrimaryOnly:
		return s.Primary
	case RenderSecondaryOnly:
		return s.Secondary
	default:
		return s.Secondary + "\n" + s.Primary
	}
}

// LyricWord is a single timed word inside a lyric line.
type LyricWord struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (w LyricWord) Duration() float64 {
	return w.End - w.Start
}

// LyricLine is a timed lyric unit that keeps per-word timing for
// word-synchronized and karaoke export. Start and End always mirror the
// first and last word; a line with no words is never emitted.
type LyricLine struct {
	Start       float64     `json:"start"`
	End         float64     `json:"end"`
	Words       []LyricWord `json:"words"`
	Translation string      `json:"translation,omitempty"`
}

// Append adds a word and refreshes the line's derived bounds.
func (l *LyricLine) Append(w LyricWord) {
	l.Words = append(l.Words, w)
	l.Start = l.Words[0].Start
	l.End = l.Words[len(l.Words)-1].End
}

// Text returns the line's words concatenated without separators, preserving
// the exact source spelling and spacing.
func (l LyricLine) Text() string {
	var b strings.Builder
	for _, w := range l.Words {
		b.WriteString(w.Text)
	}
	return b.String()
}
