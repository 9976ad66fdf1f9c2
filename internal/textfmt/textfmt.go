// Package textfmt normalizes recognized text and reflows it for display.
package textfmt

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex    = regexp.MustCompile(`[\s` + "　" + `]+`)
	sentencePunctRegex = regexp.MustCompile(`([。！？!?…])\s*`)
	clausePunctRegex   = regexp.MustCompile(`([、，,；;：:])\s*`)
)

// punctuation preferred as a line-break point, best first
const wrapPunctPriority = "，,。.!?！？；;、… "

// Clean trims the text and collapses whitespace runs (including the
// full-width space) to a single ASCII space.
func Clean(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// FormatSpacing cleans the text and inserts a single space after sentence
// and clause punctuation so dialogue lines don't render too dense.
// Never applied to lyric text, which must stay glyph-exact.
func FormatSpacing(text string) string {
	text = Clean(text)
	if text == "" {
		return ""
	}
	text = sentencePunctRegex.ReplaceAllString(text, "$1 ")
	text = clausePunctRegex.ReplaceAllString(text, "$1 ")
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// Wrap reflows text into at most maxLines display lines of roughly maxChars
// runes, preferring to break after punctuation. The remainder after the last
// permitted cut is appended as-is, so the line count never exceeds maxLines.
func Wrap(text string, maxChars, maxLines int) string {
	text = Clean(text)
	remaining := []rune(text)
	if len(remaining) <= maxChars {
		return text
	}

	var lines []string

	for i := 0; i < maxLines-1; i++ {
		if len(remaining) <= maxChars {
			break
		}

		// look a little past the budget for a break point
		windowEnd := maxChars + 2
		if windowEnd > len(remaining) {
			windowEnd = len(remaining)
		}
		window := remaining[:windowEnd]

		cut := maxChars
		for _, p := range wrapPunctPriority {
			// break only past the middle of the line, so a line
			// never starts with a stray punctuation fragment
			if idx := lastIndexRune(window, p); idx > maxChars/2 {
				cut = idx + 1
				break
			}
		}

		lines = append(lines, strings.TrimSpace(string(remaining[:cut])))
		remaining = []rune(strings.TrimSpace(string(remaining[cut:])))
	}

	lines = append(lines, string(remaining))
	return strings.Join(lines, "\n")
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
