package segment

// DefaultLyricGap is the inter-word silence that starts a new lyric line.
const DefaultLyricGap = 1.0

// SplitLyrics converts recognizer segments into lyric lines. Each segment's
// word tokens are scanned in order and a new line starts whenever the gap
// since the previous word exceeds gapThreshold. No punctuation rule applies,
// and word text is never normalized: karaoke timing tags must line up with
// the exact source glyphs. Segments without word tokens are skipped.
func SplitLyrics(segments []Segment, gapThreshold float64) []LyricLine {
	var lines []LyricLine

	for _, seg := range segments {
		if !seg.valid() || seg.NoSpeechProb >= NoSpeechThreshold {
			continue
		}
		if len(seg.Words) == 0 {
			continue
		}

		var current LyricLine
		var prevEnd float64
		hasPrev := false

		for _, w := range seg.Words {
			if !w.valid() {
				continue
			}

			if hasPrev && w.Start-prevEnd > gapThreshold && len(current.Words) > 0 {
				lines = append(lines, current)
				current = LyricLine{}
			}

			current.Append(LyricWord{Text: w.Text, Start: w.Start, End: w.End})
			prevEnd = w.End
			hasPrev = true
		}

		if len(current.Words) > 0 {
			lines = append(lines, current)
		}
	}

	return lines
}
