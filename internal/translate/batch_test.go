package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExtractTranslationResults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 0, "text": "こんにちは"},
				{"index": 1, "text": "さようなら"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here is the translation:
			[
				{"index": 0, "text": "Bonjour"},
				{"index": 1, "text": "Au revoir"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"index": 0, "text": "Hola"}
			]
			I hope this helps!`,
			wantCount: 1,
		},
		{
			name: "wrapper object with results key",
			input: `{"results": [
				{"index": 0, "text": "Translated"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with translations key",
			input: `{"translations": [
				{"index": 0, "text": "Übersetzt"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with data key",
			input: `{"data": [
				{"index": 0, "text": "Переведено"}
			]}`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `This is just plain text.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"index": 0, "text": "incomplete"`,
			wantErr: true,
		},
		{
			name:    "array with empty text",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
		{
			name: "complex preamble",
			input: `I've translated the subtitles for you. Here is the JSON:

			[
				{"index": 0, "text": "First translation"},
				{"index": 1, "text": "Second translation"}
			]

			Let me know if you need anything else!`,
			wantCount: 2,
		},
		{
			name: "ASS newline escape in text",
			input: `[
				{"index": 0, "text": "上の行\N下の行"}
			]`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractTranslationResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(results), tt.wantCount)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid escapes untouched", `"a\nb\\c"`, `"a\nb\\c"`},
		{"invalid N escaped", `"line\Nbreak"`, `"line\\Nbreak"`},
		{"no escapes", `plain`, `plain`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixInvalidEscapes(tt.input); got != tt.want {
				t.Errorf("fixInvalidEscapes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"index": 0, "text": "hello"}]`,
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"index\": 0}]\n```\n\n  ",
			want:  `[{"index": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    bool
	}{
		{"empty slice", []Result{}, false},
		{"nil slice", nil, false},
		{"result with text", []Result{{Index: 0, Text: "hello"}}, true},
		{"result with empty text", []Result{{Index: 0, Text: ""}}, false},
		{
			"multiple results one valid",
			[]Result{{Index: 0, Text: ""}, {Index: 1, Text: "valid"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateResults(tt.results); got != tt.want {
				t.Errorf("validateResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Index: i, Text: fmt.Sprintf("line %d", i)}
	}
	return items
}

func echoBatch(ctx context.Context, items []Item) ([]Result, error) {
	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = Result{Index: item.Index, Text: "t:" + item.Text}
	}
	return results, nil
}

func TestRunBatchesOrdersResults(t *testing.T) {
	items := makeItems(7)

	results, err := runBatches(context.Background(), items, 3, echoBatch)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if r.Text != fmt.Sprintf("t:line %d", i) {
			t.Errorf("result %d text = %q", i, r.Text)
		}
	}
}

func TestRunBatchesEmptyInput(t *testing.T) {
	results, err := runBatches(context.Background(), nil, 3, echoBatch)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRunBatchesPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	fail := func(ctx context.Context, items []Item) ([]Result, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return echoBatch(ctx, items)
	}

	_, err := runBatches(context.Background(), makeItems(6), 3, fail)
	if err == nil || !errors.Is(err, boom) {
		t.Errorf("expected wrapped batch error, got %v", err)
	}
}

func TestRunBatchesConcurrentOrdersResults(t *testing.T) {
	items := makeItems(20)

	results, err := runBatchesConcurrent(context.Background(), items, 4, 3, echoBatch)
	if err != nil {
		t.Fatalf("runBatchesConcurrent failed: %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
}

func TestRunBatchesConcurrentPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fail := func(ctx context.Context, items []Item) ([]Result, error) {
		if items[0].Index >= 4 {
			return nil, boom
		}
		return echoBatch(ctx, items)
	}

	_, err := runBatchesConcurrent(context.Background(), makeItems(12), 4, 2, fail)
	if err == nil || !strings.Contains(err.Error(), "failed") {
		t.Errorf("expected batch failure, got %v", err)
	}
}
