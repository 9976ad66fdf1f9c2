package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fumikura/jimaku/internal/audio"
	"github.com/fumikura/jimaku/internal/segment"
	"github.com/fumikura/jimaku/internal/subtitle"
	"github.com/fumikura/jimaku/internal/transcribe"
	"github.com/fumikura/jimaku/internal/translate"
)

// karaokePrompt biases the recognizer toward treating the input as a song.
const karaokePrompt = "Lyrics of a song. 歌詞。"

var karaokeCmd = &cobra.Command{
	Use:   "karaoke [media_file]",
	Short: "Generate karaoke lyric files for a song",
	Long: `Generate word-synchronized lyric files for a song using AI transcription
with word-level timestamps.

Three files are produced: a plain LRC file, an enhanced LRC file with
per-word timing, and a karaoke ASS file whose {\k} tags drive a
progressive fill.

The input is converted to m4a before transcription, and the raw
transcription is cached next to the output files. Word timestamps require
the whisper backend, so this command always uses the openai provider.

Examples:
  jimaku karaoke song.flac
  jimaku karaoke song.mp3 --translate-to Chinese
  jimaku karaoke track.wav -l ja --lyric-gap 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: runKaraoke,
}

func init() {
	rootCmd.AddCommand(karaokeCmd)

	karaokeCmd.Flags().
		StringP("api-key", "k", "", "OpenAI API key (or set OPENAI_API_KEY)")
	karaokeCmd.Flags().
		String("model", "", "Transcription model (default: whisper-1)")
	karaokeCmd.Flags().
		StringP("prompt", "p", karaokePrompt, "Initial prompt to bias the transcription")
	karaokeCmd.Flags().
		Float64("lyric-gap", 0, "Silence in seconds that starts a new lyric line (default from config)")
	karaokeCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	karaokeCmd.Flags().
		String("translate-to", "", "Target language for lyric translation (empty disables translation)")
	karaokeCmd.Flags().
		String("translate-provider", "gemini", "Translation provider (openai, gemini, anthropic)")
	karaokeCmd.Flags().
		String("translate-model", "", "Translation model (default: provider's default)")
	karaokeCmd.Flags().
		String("translate-api-key", "", "Translation API key (or set the provider's env var)")
}

func runKaraoke(cmd *cobra.Command, args []string) error {
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
	if cmd.Flags().Changed("lyric-gap") {
		cfg.Segmentation.LyricGap, _ = cmd.Flags().GetFloat64("lyric-gap")
	}

	translateTo, _ := cmd.Flags().GetString("translate-to")

	outputDir := resolveOutputDir(cmd, mediaPath)
	baseName := baseNameWithoutExt(mediaPath)

	logger.Infow("Starting karaoke generation",
		"input", mediaPath,
		"output_dir", outputDir,
		"lyric_gap", cfg.Segmentation.LyricGap,
	)

	result, err := cachedTranscription(ctx, cmd, mediaPath, outputDir, true, transcribeSong)
	if err != nil {
		return err
	}

	logger.Infow("Transcription ready", "segments", len(result.Segments))

	lines := segment.SplitLyrics(result.Segments, cfg.Segmentation.LyricGap)
	if len(lines) == 0 {
		return fmt.Errorf("no lyric lines with word timestamps found in %s", mediaPath)
	}

	logger.Infow("Split lyrics", "lines", len(lines))

	if translateTo != "" {
		if err := translateLyrics(ctx, cmd, lines, result.Language, translateTo); err != nil {
			return err
		}
	}

	style := subtitle.DefaultKaraokeStyle()
	style.PlayResX = cfg.Style.PlayResX
	style.PlayResY = cfg.Style.PlayResY
	style.Font = cfg.Style.Font

	outputs := []struct {
		path   string
		export func(path string) error
	}{
		{
			path: filepath.Join(outputDir, baseName+".lrc"),
			export: func(path string) error {
				return subtitle.LRCExporter{}.Export(lines, path)
			},
		},
		{
			path: filepath.Join(outputDir, baseName+"_e.lrc"),
			export: func(path string) error {
				return subtitle.EnhancedLRCExporter{}.Export(lines, path)
			},
		},
		{
			path: filepath.Join(outputDir, baseName+"_k.ass"),
			export: func(path string) error {
				return subtitle.NewKaraokeASSExporter(style).Export(lines, path)
			},
		},
	}

	for _, out := range outputs {
		if err := out.export(out.path); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(out.path), err)
		}
		abs, _ := filepath.Abs(out.path)
		fmt.Printf("Lyrics written: %s\n", abs)
	}
	fmt.Printf("  Lines: %d\n", len(lines))

	return nil
}

func transcribeSong(
	ctx context.Context,
	cmd *cobra.Command,
	mediaPath string,
) (*transcribe.Result, error) {
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	language, _ := cmd.Flags().GetString("language")

	apiKey, err := resolveAPIKey(apiKeyFlag, "openai")
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "jimaku-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Infow("Converting audio to m4a")
	audioPath, err := audio.ConvertToM4A(ctx, mediaPath, tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to convert audio: %w", err)
	}

	transcriber, err := transcribe.NewOpenAITranscriber(ctx, apiKey, transcribe.Options{
		Language:       language,
		Model:          model,
		Prompt:         prompt,
		WordTimestamps: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing song")

	result, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	return result, nil
}

// translateLyrics fills each line's translation, keeping lines aligned by
// index.
func translateLyrics(
	ctx context.Context,
	cmd *cobra.Command,
	lines []segment.LyricLine,
	sourceLanguage, targetLanguage string,
) error {
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
			Lyric:          true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := make([]translate.Item, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line.Text()) == "" {
			continue
		}
		items = append(items, translate.Item{Index: i, Text: line.Text()})
	}

	logger.Infow("Translating lyrics",
		"provider", providerStr,
		"target", targetLanguage,
		"lines", len(items),
	)

	results, err := translator.TranslateWithConcurrency(ctx, items, concurrency)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	for _, r := range results {
		if r.Index < 0 || r.Index >= len(lines) {
			logger.Warnw("Skipping invalid result index", "index", r.Index)
			continue
		}
		lines[r.Index].Translation = r.Text
	}

	return nil
}
