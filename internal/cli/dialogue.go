package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fumikura/jimaku/internal/audio"
	"github.com/fumikura/jimaku/internal/segment"
	"github.com/fumikura/jimaku/internal/subtitle"
	"github.com/fumikura/jimaku/internal/transcribe"
	"github.com/fumikura/jimaku/internal/translate"
)

// dialoguePrompt biases the recognizer toward colloquial anime dialogue.
const dialoguePrompt = "アニメの日本語字幕。常体。口語。"

var dialogueCmd = &cobra.Command{
	Use:   "dialogue [media_file]",
	Short: "Generate dialogue subtitles for an audio or video file",
	Long: `Generate SRT and styled ASS subtitles for the specified audio or video
file using AI transcription with word-level timestamps.

For video files, audio is automatically extracted before transcription.
The transcript is split into subtitle lines at pauses and sentence
punctuation, and lines can optionally be translated into a second language
for bilingual subtitles.

The raw transcription is cached next to the output files, so re-running
with different segmentation or translation settings does not re-transcribe.

Examples:
  jimaku dialogue episode.mkv
  jimaku dialogue audio.mp3 --format srt
  jimaku dialogue episode.mkv --translate-to Chinese --render both
  jimaku dialogue drama.mp4 -l ja --gap-threshold 0.3 --concurrency 5`,
	Args: cobra.ExactArgs(1),
	RunE: runDialogue,
}

func init() {
	rootCmd.AddCommand(dialogueCmd)

	dialogueCmd.Flags().
		StringP("api-key", "k", "", "Transcription API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
	dialogueCmd.Flags().
		String("provider", "openai", "Transcription provider (openai, gemini)")
	dialogueCmd.Flags().
		String("model", "", "Transcription model (default: provider's default)")
	dialogueCmd.Flags().
		StringP("prompt", "p", dialoguePrompt, "Initial prompt to bias the transcription")
	dialogueCmd.Flags().
		StringP("format", "f", "both", "Output format (srt, ass, both)")
	dialogueCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	dialogueCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	dialogueCmd.Flags().
		Bool("merge", true, "Merge nearly adjacent subtitle lines")
	dialogueCmd.Flags().
		Float64("gap-threshold", 0, "Pause length in seconds that starts a new line (default from config)")
	dialogueCmd.Flags().
		Int("max-chars", 0, "Characters per subtitle line before wrapping (default from config)")
	dialogueCmd.Flags().
		Int("max-lines", 0, "Maximum wrapped lines per subtitle (default from config)")
	dialogueCmd.Flags().
		String("translate-to", "", "Target language for translation (empty disables translation)")
	dialogueCmd.Flags().
		String("translate-provider", "gemini", "Translation provider (openai, gemini, anthropic)")
	dialogueCmd.Flags().
		String("translate-model", "", "Translation model (default: provider's default)")
	dialogueCmd.Flags().
		String("translate-api-key", "", "Translation API key (or set the provider's env var)")
	dialogueCmd.Flags().
		String("render", "both", "Which text to render when translated (both, primary, secondary)")
}

func runDialogue(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("gap-threshold") {
		cfg.Segmentation.GapThreshold, _ = cmd.Flags().GetFloat64("gap-threshold")
	}
	if cmd.Flags().Changed("max-chars") {
		cfg.Display.MaxChars, _ = cmd.Flags().GetInt("max-chars")
	}
	if cmd.Flags().Changed("max-lines") {
		cfg.Display.MaxLines, _ = cmd.Flags().GetInt("max-lines")
	}

	formatStr, _ := cmd.Flags().GetString("format")
	wantSRT, wantASS, err := dialogueFormats(formatStr)
	if err != nil {
		return err
	}

	renderStr, _ := cmd.Flags().GetString("render")
	mode, err := segment.ParseRenderMode(renderStr)
	if err != nil {
		return err
	}

	mergeSpans, _ := cmd.Flags().GetBool("merge")
	translateTo, _ := cmd.Flags().GetString("translate-to")

	outputDir := resolveOutputDir(cmd, mediaPath)
	baseName := baseNameWithoutExt(mediaPath)

	logger.Infow("Starting subtitle generation",
		"input", mediaPath,
		"output_dir", outputDir,
		"format", formatStr,
		"gap_threshold", cfg.Segmentation.GapThreshold,
	)

	result, err := cachedTranscription(ctx, cmd, mediaPath, outputDir, false, transcribeDialogue)
	if err != nil {
		return err
	}

	logger.Infow("Transcription ready",
		"segments", len(result.Segments),
		"language", result.Language,
	)

	spans := segment.SplitDialogue(result.Segments, cfg.Segmentation.GapThreshold)
	if mergeSpans {
		spans = segment.MergeNearby(
			spans,
			cfg.Segmentation.MaxGap,
			cfg.Segmentation.MaxMergedDuration,
		)
	}

	logger.Infow("Segmented transcript",
		"spans", len(spans),
		"merged", mergeSpans,
	)

	if translateTo != "" {
		if err := translateSpans(ctx, cmd, spans, result.Language, translateTo); err != nil {
			return err
		}
	}

	style := subtitle.ASSStyle{
		PlayResX: cfg.Style.PlayResX,
		PlayResY: cfg.Style.PlayResY,
		Font:     cfg.Style.Font,
		FontSize: cfg.Style.FontSize,
	}

	var outputs []string

	if wantSRT {
		path := filepath.Join(outputDir, baseName+".srt")
		exporter := subtitle.NewSRTExporter(cfg.Display.MaxChars, cfg.Display.MaxLines, mode)
		if err := exporter.Export(spans, path); err != nil {
			return fmt.Errorf("failed to write SRT: %w", err)
		}
		outputs = append(outputs, path)
	}

	if wantASS {
		path := filepath.Join(outputDir, baseName+".ass")
		exporter := subtitle.NewASSExporter(style, cfg.Display.MaxChars, cfg.Display.MaxLines, mode)
		if err := exporter.Export(spans, path); err != nil {
			return fmt.Errorf("failed to write ASS: %w", err)
		}
		outputs = append(outputs, path)
	}

	for _, path := range outputs {
		abs, _ := filepath.Abs(path)
		fmt.Printf("Subtitles written: %s\n", abs)
	}
	fmt.Printf("  Lines: %d\n", len(spans))

	return nil
}

func dialogueFormats(formatStr string) (wantSRT, wantASS bool, err error) {
	switch strings.ToLower(formatStr) {
	case "srt":
		return true, false, nil
	case "ass":
		return false, true, nil
	case "both":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("unsupported format %q: use srt, ass, or both", formatStr)
	}
}

// transcribeFunc produces a fresh transcription when the cache is empty.
type transcribeFunc func(ctx context.Context, cmd *cobra.Command, mediaPath string) (*transcribe.Result, error)

// cachedTranscription loads the raw transcription cached next to the
// output files, falling back to fn and saving its result.
func cachedTranscription(
	ctx context.Context,
	cmd *cobra.Command,
	mediaPath, outputDir string,
	song bool,
	fn transcribeFunc,
) (*transcribe.Result, error) {
	cachePath := transcribe.CachePath(outputDir, mediaPath, song)

	result, err := transcribe.LoadCache(cachePath)
	if err != nil {
		logger.Warnw("Ignoring unreadable transcription cache",
			"path", cachePath,
			"error", err,
		)
	}
	if result != nil {
		logger.Infow("Using cached transcription", "path", cachePath)
		return result, nil
	}

	result, err = fn(ctx, cmd, mediaPath)
	if err != nil {
		return nil, err
	}

	if err := transcribe.SaveCache(cachePath, result); err != nil {
		logger.Warnw("Failed to cache transcription", "error", err)
	} else {
		logger.Infow("Cached raw transcription", "path", cachePath)
	}

	return result, nil
}

func transcribeDialogue(
	ctx context.Context,
	cmd *cobra.Command,
	mediaPath string,
) (*transcribe.Result, error) {
	providerStr, _ := cmd.Flags().GetString("provider")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	language, _ := cmd.Flags().GetString("language")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	apiKey, err := resolveAPIKey(apiKeyFlag, providerStr)
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "jimaku-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	var audioPath string
	compressionOpts := audio.DefaultCompressionOptions()

	if audio.IsVideoFile(mediaPath) {
		logger.Infow("Extracting audio from video")
		audioPath, err = audio.ExtractAudio(ctx, mediaPath, tempDir, compressionOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to extract audio: %w", err)
		}
	} else {
		logger.Infow("Compressing audio for transcription")
		audioPath = filepath.Join(tempDir, "audio.mp3")
		if err := audio.CompressAudio(ctx, mediaPath, audioPath, compressionOpts); err != nil {
			return nil, fmt.Errorf("failed to compress audio: %w", err)
		}
	}

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(chunkDuration) * time.Minute

	chunks, err := audio.ChunkAudio(ctx, audioPath, chunkDur, chunkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	logger.Infow("Created audio chunks", "count", len(chunks))

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(providerStr),
		apiKey,
		transcribe.Options{
			Language:       language,
			Model:          model,
			Prompt:         prompt,
			WordTimestamps: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"provider", providerStr,
		"concurrency", concurrency,
	)

	result, err := transcriber.TranscribeWithChunks(ctx, chunks, concurrency)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	return result, nil
}

// translateSpans fills each span's secondary text from the translation
// provider, keeping spans aligned by index.
func translateSpans(
	ctx context.Context,
	cmd *cobra.Command,
	spans []segment.Span,
	sourceLanguage, targetLanguage string,
) error {
	if len(spans) == 0 {
		return nil
	}

	providerStr, _ := cmd.Flags().GetString("translate-provider")
	model, _ := cmd.Flags().GetString("translate-model")
	apiKeyFlag, _ := cmd.Flags().GetString("translate-api-key")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	apiKey, err := resolveAPIKey(apiKeyFlag, providerStr)
	if err != nil {
		return err
	}

	translator, err := translate.Factory(
		ctx,
		translate.Provider(providerStr),
		apiKey,
		translate.Options{
			InputLanguage:  sourceLanguage,
			TargetLanguage: targetLanguage,
			Model:          model,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := make([]translate.Item, len(spans))
	for i, sp := range spans {
		items[i] = translate.Item{Index: i, Text: sp.Primary}
	}

	logger.Infow("Translating subtitles",
		"provider", providerStr,
		"target", targetLanguage,
		"lines", len(items),
	)

	results, err := translator.TranslateWithConcurrency(ctx, items, concurrency)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	for _, r := range results {
		if r.Index < 0 || r.Index >= len(spans) {
			logger.Warnw("Skipping invalid result index", "index", r.Index)
			continue
		}
		spans[r.Index].Secondary = r.Text
	}

	return nil
}
