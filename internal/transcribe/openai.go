package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/fumikura/jimaku/internal/audio"
	"github.com/fumikura/jimaku/internal/segment"
)

// OpenAITranscriber uses the OpenAI Audio API (Whisper) with verbose_json
// responses. It is the only backend that returns word-level timestamps.
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperSegment struct {
	Start        float64       `json:"start"`
	End          float64       `json:"end"`
	Text         string        `json:"text"`
	NoSpeechProb float64       `json:"no_speech_prob"`
	Words        []whisperWord `json:"words"`
}

type whisperVerboseResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Words    []whisperWord    `json:"words"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	duration, _ := audio.GetDuration(audioPath)

	granularities := []string{"segment"}
	if t.options.WordTimestamps {
		granularities = []string{"word", "segment"}
	}

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: granularities,
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}
	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	language := t.options.Language
	segments, respLanguage, err := parseVerboseJSON(resp.RawJSON(), duration.Seconds())
	if err != nil {
		// degrade to one segment spanning the whole file
		segments = []segment.Segment{{
			Start: 0,
			End:   duration.Seconds(),
			Text:  strings.TrimSpace(resp.Text),
		}}
	}
	if respLanguage != "" {
		language = respLanguage
	}

	return &Result{
		Segments: segments,
		Language: language,
		Duration: duration,
	}, nil
}

// parseVerboseJSON decodes a verbose_json payload. Segments keep their raw
// second-precision floats; words are attached per segment by the API, with
// a flat top-level word list matched back to segments by time range when a
// segment arrives without its own words.
func parseVerboseJSON(rawJSON string, fallbackDuration float64) ([]segment.Segment, string, error) {
	if rawJSON == "" {
		return nil, "", fmt.Errorf("empty response")
	}

	var resp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, "", fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(resp.Segments) == 0 {
		if resp.Text == "" {
			return nil, "", fmt.Errorf("no segments or text in response")
		}
		dur := fallbackDuration
		if resp.Duration > 0 {
			dur = resp.Duration
		}
		return []segment.Segment{{
			Start: 0,
			End:   dur,
			Text:  strings.TrimSpace(resp.Text),
		}}, resp.Language, nil
	}

	segments := make([]segment.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		words := seg.Words
		if len(words) == 0 && len(resp.Words) > 0 {
			words = wordsInRange(resp.Words, seg.Start, seg.End)
		}

		out := segment.Segment{
			Start:        seg.Start,
			End:          seg.End,
			Text:         text,
			NoSpeechProb: seg.NoSpeechProb,
		}
		for _, w := range words {
			out.Words = append(out.Words, segment.Token{
				Text:  w.Word,
				Start: w.Start,
				End:   w.End,
			})
		}
		segments = append(segments, out)
	}

	return segments, resp.Language, nil
}

func wordsInRange(words []whisperWord, start, end float64) []whisperWord {
	var out []whisperWord
	for _, w := range words {
		if w.Start >= start && w.Start < end {
			out = append(out, w)
		}
	}
	return out
}

// TranscribeChunk transcribes one chunk and shifts all timestamps, word
// timings included, by the chunk's offset into the source file.
func (t *OpenAITranscriber) TranscribeChunk(
	ctx context.Context,
	chunk audio.ChunkInfo,
) ([]segment.Segment, error) {
	result, err := t.Transcribe(ctx, chunk.Path)
	if err != nil {
		return nil, err
	}

	offset := chunk.StartTime.Seconds()
	adjusted := make([]segment.Segment, len(result.Segments))
	for i, seg := range result.Segments {
		shifted := seg
		shifted.Start += offset
		shifted.End += offset
		shifted.Words = make([]segment.Token, len(seg.Words))
		for j, w := range seg.Words {
			shifted.Words[j] = segment.Token{
				Text:  w.Text,
				Start: w.Start + offset,
				End:   w.End + offset,
			}
		}
		adjusted[i] = shifted
	}

	return adjusted, nil
}

// TranscribeWithChunks transcribes chunks in parallel, cancelling the rest
// on the first failure, and merges the results in chunk order.
func (t *OpenAITranscriber) TranscribeWithChunks(
	ctx context.Context,
	chunks []audio.ChunkInfo,
	concurrency int,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan audio.ChunkInfo)
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case chunk, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					segments, err := t.TranscribeChunk(ctx, chunk)
					if err != nil {
						cancel()
					}
					resultChan <- chunkResult{
						Index:    chunk.Index,
						Segments: segments,
						Error:    err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for _, chunk := range chunks {
			select {
			case <-ctx.Done():
				return
			case workChan <- chunk:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	var firstErr error
	for result := range resultChan {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
			cancel()
		}
		if result.Error == nil {
			results = append(results, result)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	var allSegments []segment.Segment
	for _, r := range results {
		allSegments = append(allSegments, r.Segments...)
	}

	var totalDuration time.Duration
	if len(chunks) > 0 {
		totalDuration = chunks[len(chunks)-1].EndTime
	}

	return &Result{
		Segments: allSegments,
		Language: t.options.Language,
		Duration: totalDuration,
	}, nil
}
