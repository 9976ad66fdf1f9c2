package segment

import (
	"strings"

	"github.com/fumikura/jimaku/internal/textfmt"
)

// DefaultGapThreshold is the silence duration that forces a dialogue cut.
const DefaultGapThreshold = 0.25

// a sentence boundary always forces a cut regardless of gap size
const sentenceEndPunct = "。！？!?…"

// SplitDialogue converts recognizer segments into dialogue spans. Segments
// with word tokens are re-cut on silence gaps and sentence punctuation;
// segments without them fall back to one span per segment. Segments that are
// probably silence are skipped entirely.
func SplitDialogue(segments []Segment, gapThreshold float64) []Span {
	var spans []Span

	for _, seg := range segments {
		if !seg.valid() || seg.NoSpeechProb >= NoSpeechThreshold {
			continue
		}

		if len(seg.Words) == 0 {
			text := textfmt.FormatSpacing(seg.Text)
			if text == "" {
				continue
			}
			spans = append(spans, Span{
				Start:   seg.Start,
				End:     seg.End,
				Primary: text,
			})
			continue
		}

		spans = append(spans, splitByWords(seg.Words, gapThreshold)...)
	}

	return spans
}

// dialogueAccum threads the pending-token buffer through a left-to-right
// scan, collecting committed spans as it goes.
type dialogueAccum struct {
	spans   []Span
	buffer  []Token
	lastEnd float64
	hasLast bool
}

func splitByWords(words []Token, gapThreshold float64) []Span {
	acc := dialogueAccum{}
	for _, w := range words {
		acc.push(w, gapThreshold)
	}
	acc.commit()
	return acc.spans
}

func (a *dialogueAccum) push(tok Token, gapThreshold float64) {
	if !tok.valid() {
		// missing or inverted timing, skip the token and keep going
		return
	}

	// silence gap rule: ties resolve toward splitting
	shouldSplit := a.hasLast && tok.Start-a.lastEnd >= gapThreshold

	if !shouldSplit && len(a.buffer) > 0 {
		last := a.buffer[len(a.buffer)-1].Text
		if strings.ContainsAny(last, sentenceEndPunct) {
			shouldSplit = true
		}
	}

	if shouldSplit {
		a.commit()
	}

	a.buffer = append(a.buffer, tok)
	a.lastEnd = tok.End
	a.hasLast = true
}

// commit converts the buffer into a span and clears it. A commit whose
// normalized text is empty produces nothing.
func (a *dialogueAccum) commit() {
	if len(a.buffer) == 0 {
		return
	}

	var b strings.Builder
	for _, tok := range a.buffer {
		b.WriteString(tok.Text)
	}

	text := textfmt.FormatSpacing(b.String())
	if text != "" {
		a.spans = append(a.spans, Span{
			Start:   a.buffer[0].Start,
			End:     a.buffer[len(a.buffer)-1].End,
			Primary: text,
		})
	}

	a.buffer = a.buffer[:0]
}
