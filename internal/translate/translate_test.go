package translate

import (
	"context"
	"strings"
	"testing"
)

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Japanese"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryReturnsAnthropicTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Chinese"}
	translator, err := Factory(ctx, ProviderAnthropic, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := translator.(*AnthropicTranslator); !ok {
		t.Errorf("expected *AnthropicTranslator, got %T", translator)
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	ctx := context.Background()
	_, err := Factory(ctx, ProviderGemini, "fake-key", Options{})
	if err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "French"}
	_, err := Factory(ctx, Provider("unknown"), "fake-key", opts)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		InputLanguage:  "Japanese",
		TargetLanguage: "Chinese",
	}

	items := []Item{
		{Index: 0, Text: "こんにちは"},
		{Index: 1, Text: "さようなら"},
	}

	prompt := BuildPrompt(opts, items)

	if !strings.Contains(prompt, "Japanese subtitle lines") {
		t.Error("prompt should contain input language")
	}
	if !strings.Contains(prompt, "to Chinese") {
		t.Error("prompt should contain target language")
	}
	if !strings.Contains(prompt, "こんにちは") {
		t.Error("prompt should contain input text")
	}
	if !strings.Contains(prompt, `"index": 0`) {
		t.Error("prompt should contain index")
	}
	if !strings.Contains(prompt, "consecutive") {
		t.Error("prompt should state that lines are consecutive context")
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	opts := Options{TargetLanguage: "Spanish"}
	prompt := BuildPrompt(opts, []Item{{Index: 0, Text: "Hello"}})

	if !strings.Contains(prompt, "to Spanish") {
		t.Error("prompt should contain target language")
	}
	if strings.Contains(prompt, "the following  subtitle") {
		t.Error("prompt should not have an empty language slot")
	}
}

func TestBuildPromptLyricMode(t *testing.T) {
	opts := Options{TargetLanguage: "Chinese", Lyric: true}
	prompt := BuildPrompt(opts, []Item{{Index: 0, Text: "夜に駆ける"}})

	if !strings.Contains(prompt, "song lyric lines") {
		t.Error("lyric prompt should name the content as lyrics")
	}
	if strings.Contains(prompt, `{\pos}`) {
		t.Error("lyric prompt should not mention subtitle formatting tags")
	}
}

func TestOptionsBatchSize(t *testing.T) {
	if got := (Options{}).batchSize(); got != DefaultBatchSize {
		t.Errorf("default batch size = %d, want %d", got, DefaultBatchSize)
	}
	if got := (Options{BatchSize: 10}).batchSize(); got != 10 {
		t.Errorf("explicit batch size = %d, want 10", got)
	}
}
