// Package transcribe turns audio files into timestamped segments via
// speech recognition providers.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/fumikura/jimaku/internal/audio"
	"github.com/fumikura/jimaku/internal/segment"
)

// Result holds a full transcription.
type Result struct {
	Segments []segment.Segment
	Language string
	Duration time.Duration
}

// Transcriber transcribes a single audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// ConcurrentTranscriber additionally transcribes pre-split chunks in
// parallel, shifting each chunk's timestamps back to source time.
type ConcurrentTranscriber interface {
	Transcriber
	TranscribeWithChunks(
		ctx context.Context,
		chunks []audio.ChunkInfo,
		concurrency int,
	) (*Result, error)
}

// Provider names a transcription backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options configure a transcription request.
type Options struct {
	Language string
	Model    string
	Prompt   string
	// WordTimestamps requests per-word timing. Only the whisper backend
	// honors it; karaoke output needs it.
	WordTimestamps bool
}

type chunkResult struct {
	Index    int
	Segments []segment.Segment
	Error    error
}

// Factory creates a transcriber for the named provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (ConcurrentTranscriber, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
