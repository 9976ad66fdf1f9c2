package segment

import (
	"testing"
)

func wordSegment(words ...Token) Segment {
	seg := Segment{Words: words}
	if len(words) > 0 {
		seg.Start = words[0].Start
		seg.End = words[len(words)-1].End
	}
	return seg
}

func TestSplitDialoguePunctuationForcesCut(t *testing.T) {
	seg := wordSegment(
		Token{Text: "こんにちは", Start: 0.0, End: 1.0},
		Token{Text: "。", Start: 1.0, End: 1.05},
		Token{Text: "元気", Start: 3.0, End: 3.5},
		Token{Text: "？", Start: 3.5, End: 3.55},
	)

	spans := SplitDialogue([]Segment{seg}, 0.25)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}

	if spans[0].Start != 0.0 || spans[0].End != 1.05 || spans[0].Primary != "こんにちは。" {
		t.Errorf("span 0 = %+v", spans[0])
	}
	if spans[1].Start != 3.0 || spans[1].End != 3.55 || spans[1].Primary != "元気？" {
		t.Errorf("span 1 = %+v", spans[1])
	}
}

func TestSplitDialogueLargeThresholdKeepsSingleSpan(t *testing.T) {
	seg := wordSegment(
		Token{Text: "こんにちは", Start: 0.0, End: 1.0},
		Token{Text: "みなさん", Start: 1.0, End: 1.05},
		Token{Text: "元気", Start: 3.0, End: 3.5},
		Token{Text: "ですか", Start: 3.5, End: 3.55},
	)

	spans := SplitDialogue([]Segment{seg}, 10.0)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Start != 0.0 || spans[0].End != 3.55 {
		t.Errorf("span bounds = (%v, %v), want (0, 3.55)", spans[0].Start, spans[0].End)
	}
}

func TestSplitDialogueGapTieSplits(t *testing.T) {
	// gap == threshold must split (inclusive comparison)
	seg := wordSegment(
		Token{Text: "ひとつ", Start: 0.0, End: 1.0},
		Token{Text: "ふたつ", Start: 1.25, End: 2.0},
	)

	spans := SplitDialogue([]Segment{seg}, 0.25)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans on exact-threshold gap, got %d", len(spans))
	}
}

func TestSplitDialogueSegmentFallback(t *testing.T) {
	segments := []Segment{
		{Start: 0.0, End: 2.0, Text: "  词级时间戳がない　セグメント  "},
	}

	spans := SplitDialogue(segments, 0.25)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Primary != "词级时间戳がない セグメント" {
		t.Errorf("fallback text = %q", spans[0].Primary)
	}
	if spans[0].Start != 0.0 || spans[0].End != 2.0 {
		t.Errorf("fallback bounds = (%v, %v)", spans[0].Start, spans[0].End)
	}
}

func TestSplitDialogueSkipsNoSpeechSegments(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1, Text: "音楽", NoSpeechProb: 0.95},
		{Start: 0, End: 1, Text: "ぎりぎり", NoSpeechProb: 0.6},
		{Start: 2, End: 3, Text: "セリフ", NoSpeechProb: 0.1},
	}

	spans := SplitDialogue(segments, 0.25)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Primary != "セリフ" {
		t.Errorf("kept span = %q", spans[0].Primary)
	}
}

func TestSplitDialogueDropsEmptyCommits(t *testing.T) {
	seg := wordSegment(
		Token{Text: "   ", Start: 0.0, End: 0.5},
		Token{Text: "　", Start: 0.5, End: 1.0},
	)

	if spans := SplitDialogue([]Segment{seg}, 0.25); len(spans) != 0 {
		t.Errorf("expected no spans from whitespace tokens, got %+v", spans)
	}
}

func TestSplitDialogueSkipsMalformedTokens(t *testing.T) {
	seg := wordSegment(
		Token{Text: "まとも", Start: 0.0, End: 0.5},
		Token{Text: "逆転", Start: 2.0, End: 1.0}, // end before start
		Token{Text: "です", Start: 0.5, End: 0.9},
	)

	spans := SplitDialogue([]Segment{seg}, 10.0)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Primary != "まともです" {
		t.Errorf("span text = %q", spans[0].Primary)
	}
}

func TestSplitDialogueOrderingInvariant(t *testing.T) {
	seg := wordSegment(
		Token{Text: "一。", Start: 0.0, End: 0.4},
		Token{Text: "二。", Start: 0.5, End: 0.9},
		Token{Text: "三。", Start: 2.0, End: 2.4},
		Token{Text: "四", Start: 2.5, End: 2.9},
	)

	spans := SplitDialogue([]Segment{seg}, 0.25)
	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}
	for i, sp := range spans {
		if sp.End < sp.Start {
			t.Errorf("span %d: end %v before start %v", i, sp.End, sp.Start)
		}
		if i > 0 && sp.Start < spans[i-1].Start {
			t.Errorf("span %d starts before span %d", i, i-1)
		}
	}
}

func TestSpanContent(t *testing.T) {
	withTranslation := Span{Primary: "原文", Secondary: "译文"}
	withoutTranslation := Span{Primary: "原文"}

	tests := []struct {
		name string
		span Span
		mode RenderMode
		want string
	}{
		{"both", withTranslation, RenderBoth, "译文\n原文"},
		{"primary only", withTranslation, RenderPrimaryOnly, "原文"},
		{"secondary only", withTranslation, RenderSecondaryOnly, "译文"},
		{"fallback both", withoutTranslation, RenderBoth, "原文"},
		{"fallback secondary", withoutTranslation, RenderSecondaryOnly, "原文"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Content(tt.mode); got != tt.want {
				t.Errorf("Content(%v) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RenderMode
		wantErr bool
	}{
		{"both", RenderBoth, false},
		{"bilingual", RenderBoth, false},
		{"Primary", RenderPrimaryOnly, false},
		{"secondary", RenderSecondaryOnly, false},
		{" translation ", RenderSecondaryOnly, false},
		{"zh", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRenderMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRenderMode(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRenderMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
