package segment

import "testing"

func TestSplitLyricsGapStartsNewLine(t *testing.T) {
	seg := wordSegment(
		Token{Text: "夜に", Start: 0.0, End: 0.8},
		Token{Text: "駆ける", Start: 0.9, End: 1.6},
		Token{Text: "星が", Start: 3.0, End: 3.6}, // gap 1.4s > 1.0
		Token{Text: "降る", Start: 3.7, End: 4.2},
	)

	lines := SplitLyrics([]Segment{seg}, DefaultLyricGap)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if lines[0].Text() != "夜に駆ける" {
		t.Errorf("line 0 text = %q", lines[0].Text())
	}
	if lines[0].Start != 0.0 || lines[0].End != 1.6 {
		t.Errorf("line 0 bounds = (%v, %v)", lines[0].Start, lines[0].End)
	}
	if lines[1].Text() != "星が降る" {
		t.Errorf("line 1 text = %q", lines[1].Text())
	}
	if lines[1].Start != 3.0 || lines[1].End != 4.2 {
		t.Errorf("line 1 bounds = (%v, %v)", lines[1].Start, lines[1].End)
	}
}

func TestSplitLyricsExactGapDoesNotSplit(t *testing.T) {
	// lyric splitting is strictly greater-than, unlike the dialogue rule
	seg := wordSegment(
		Token{Text: "ひとつ", Start: 0.0, End: 1.0},
		Token{Text: "ふたつ", Start: 2.0, End: 2.5},
	)

	lines := SplitLyrics([]Segment{seg}, 1.0)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line on exact-threshold gap, got %d", len(lines))
	}
}

func TestSplitLyricsPreservesExactWordText(t *testing.T) {
	// lyric text is never normalized: spacing and punctuation stay put
	seg := wordSegment(
		Token{Text: " Hello", Start: 0.0, End: 0.5},
		Token{Text: " world!", Start: 0.6, End: 1.1},
	)

	lines := SplitLyrics([]Segment{seg}, DefaultLyricGap)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text() != " Hello world!" {
		t.Errorf("text = %q, want %q", lines[0].Text(), " Hello world!")
	}
}

func TestSplitLyricsSkipsSegmentsWithoutWords(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Text: "no word timing"},
		wordSegment(Token{Text: "歌", Start: 2.5, End: 3.0}),
	}

	lines := SplitLyrics(segments, DefaultLyricGap)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text() != "歌" {
		t.Errorf("text = %q", lines[0].Text())
	}
}

func TestSplitLyricsSkipsNoSpeechSegments(t *testing.T) {
	segments := []Segment{
		func() Segment {
			s := wordSegment(Token{Text: "間奏", Start: 0, End: 1})
			s.NoSpeechProb = 0.8
			return s
		}(),
		wordSegment(Token{Text: "歌詞", Start: 2, End: 3}),
	}

	lines := SplitLyrics(segments, DefaultLyricGap)
	if len(lines) != 1 || lines[0].Text() != "歌詞" {
		t.Fatalf("expected only the speech line, got %+v", lines)
	}
}

func TestLyricLineAppendUpdatesBounds(t *testing.T) {
	var line LyricLine
	line.Append(LyricWord{Text: "a", Start: 1.0, End: 1.5})
	line.Append(LyricWord{Text: "b", Start: 1.6, End: 2.2})

	if line.Start != 1.0 || line.End != 2.2 {
		t.Errorf("bounds = (%v, %v), want (1, 2.2)", line.Start, line.End)
	}
	if len(line.Words) != 2 {
		t.Errorf("expected 2 words, got %d", len(line.Words))
	}
}
