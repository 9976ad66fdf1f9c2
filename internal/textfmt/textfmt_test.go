package textfmt

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims edges", "  hello  ", "hello"},
		{"collapses runs", "a \t\n b", "a b"},
		{"full-width space", "あ　い", "あ い"},
		{"full-width run", "あ　　　い", "あ い"},
		{"only whitespace", " \t　 ", ""},
		{"already clean", "こんにちは", "こんにちは"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := Clean(got); again != got {
				t.Errorf("Clean not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFormatSpacing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sentence punctuation", "こんにちは。元気？", "こんにちは。 元気？"},
		{"clause punctuation", "はい、そうです", "はい、 そうです"},
		{"trailing punctuation trimmed", "おわり。", "おわり。"},
		{"mixed", "えっ？そうなの、本当", "えっ？ そうなの、 本当"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSpacing(tt.input)
			if got != tt.want {
				t.Errorf("FormatSpacing(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := FormatSpacing(got); again != got {
				t.Errorf("FormatSpacing not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		maxLines int
		want     string
	}{
		{
			name:     "fits on one line",
			input:    "短い",
			maxChars: 18,
			maxLines: 2,
			want:     "短い",
		},
		{
			name:     "hard cut without punctuation",
			input:    "一二三四五六七八九十",
			maxChars: 5,
			maxLines: 2,
			want:     "一二三四五\n六七八九十",
		},
		{
			name:     "prefers punctuation break",
			input:    "はいそうです、それから続きます",
			maxChars: 8,
			maxLines: 2,
			want:     "はいそうです、\nそれから続きます",
		},
		{
			name:     "punctuation too early falls back to hard cut",
			input:    "あ、いうえおかきくけこさしす",
			maxChars: 8,
			maxLines: 2,
			want:     "あ、いうえおかき\nくけこさしす",
		},
		{
			name:     "remainder never rewrapped",
			input:    "一二三四五六七八九十一二三四五六七八",
			maxChars: 5,
			maxLines: 2,
			want:     "一二三四五\n六七八九十一二三四五六七八",
		},
		{
			name:     "three lines",
			input:    "一二三四五六七八九十一二三",
			maxChars: 5,
			maxLines: 3,
			want:     "一二三四五\n六七八九十\n一二三",
		},
		{
			name:     "space break for latin text",
			input:    "hello there wrapping",
			maxChars: 12,
			maxLines: 2,
			want:     "hello there\nwrapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.input, tt.maxChars, tt.maxLines)
			if got != tt.want {
				t.Errorf("Wrap(%q, %d, %d) = %q, want %q",
					tt.input, tt.maxChars, tt.maxLines, got, tt.want)
			}
			if lines := strings.Count(got, "\n") + 1; lines > tt.maxLines {
				t.Errorf("got %d lines, budget is %d", lines, tt.maxLines)
			}
		})
	}
}

func TestWrapNeverExceedsLineBudget(t *testing.T) {
	inputs := []string{
		"一二三四五六七八九十一二三四五六七八九十一二三四五六七八九十",
		"word word word word word word word word word word word word",
		"。。。。。。。。。。。。。。。。。。。。",
	}
	for _, input := range inputs {
		for maxChars := 1; maxChars <= 10; maxChars++ {
			for maxLines := 1; maxLines <= 4; maxLines++ {
				got := Wrap(input, maxChars, maxLines)
				if lines := strings.Count(got, "\n") + 1; lines > maxLines {
					t.Fatalf("Wrap(%q, %d, %d) produced %d lines",
						input, maxChars, maxLines, lines)
				}
			}
		}
	}
}
