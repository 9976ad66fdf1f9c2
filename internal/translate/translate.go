// Package translate renders subtitle and lyric lines into a target
// language through LLM providers, batching lines so each request carries
// surrounding context.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Item is a single line to translate. The index ties the result back to
// its source span.
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Result is one translated line.
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Result, error)
}

// ConcurrentTranslator runs multiple batches in parallel.
type ConcurrentTranslator interface {
	Translator
	TranslateWithConcurrency(
		ctx context.Context,
		items []Item,
		concurrency int,
	) ([]Result, error)
}

type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultBatchSize is how many lines go into one API request. Batches are
// also the context window: lines in the same batch are translated together.
const DefaultBatchSize = 50

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	// Lyric mode relaxes the formatting rules: song lines are translated
	// for register and flow rather than literal correspondence.
	Lyric     bool
	BatchSize int
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

// Factory creates a translator for the named provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (ConcurrentTranslator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// BuildPrompt creates the translation prompt shared by all providers. The
// whole batch goes into one prompt so each line is translated in the
// context of its neighbors.
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	kind := "subtitle lines"
	if opts.Lyric {
		kind = "song lyric lines"
	}

	if opts.InputLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s %s to %s.\n\n",
			opts.InputLanguage, kind, opts.TargetLanguage,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s to %s.\n\n",
			kind, opts.TargetLanguage,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. The lines are consecutive and in order. Use the surrounding lines as context so wording stays consistent across the batch.\n")
	sb.WriteString("2. A line may be a fragment of a sentence that continues on the next line. Translate the fragment so it still reads naturally in sequence; never merge lines.\n")
	sb.WriteString("3. Translate ONLY the text content, preserving the meaning and tone.\n")
	if opts.Lyric {
		sb.WriteString("4. These are song lyrics: favor natural, lyrical phrasing over literal word order.\n")
	} else {
		sb.WriteString("4. Keep any formatting tags (like {\\pos}, {\\an}, etc.) unchanged.\n")
	}
	sb.WriteString("5. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("6. Each object must have 'index' and 'text' fields, and the 'index' values must match the input indices exactly.\n")
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt))
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}
