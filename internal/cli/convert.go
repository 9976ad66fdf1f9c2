package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fumikura/jimaku/internal/audio"
)

var convertCmd = &cobra.Command{
	Use:   "convert [media_file]",
	Short: "Extract or convert a media file's audio track",
	Long: `Extract the audio track from a media file and save it in the requested
format. Video streams are dropped.

Supported output formats: wav, mp3, aac, m4a, flac.

Examples:
  jimaku convert video.mp4
  jimaku convert video.mkv -f m4a
  jimaku convert song.flac --format mp3 --sample-rate 44100 --channels 2`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "wav", "Output audio format (wav, mp3, aac, m4a, flac)")
	convertCmd.Flags().
		IntP("sample-rate", "r", 16000, "Sample rate in Hz (e.g., 16000, 44100, 48000)")
	convertCmd.Flags().
		IntP("channels", "c", 1, "Number of audio channels (1=mono, 2=stereo)")
	convertCmd.Flags().
		StringP("bitrate", "b", "", "Bitrate for lossy formats (e.g., 128k, 320k)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	format, _ := cmd.Flags().GetString("format")
	sampleRate, _ := cmd.Flags().GetInt("sample-rate")
	channels, _ := cmd.Flags().GetInt("channels")
	bitrate, _ := cmd.Flags().GetString("bitrate")

	validFormats := map[string]bool{
		"wav":  true,
		"mp3":  true,
		"aac":  true,
		"m4a":  true,
		"flac": true,
	}
	if !validFormats[format] {
		return fmt.Errorf(
			"invalid format %q: supported formats are wav, mp3, aac, m4a, flac",
			format,
		)
	}

	outputDir := resolveOutputDir(cmd, mediaPath)
	outputPath := filepath.Join(outputDir, baseNameWithoutExt(mediaPath)+"."+format)

	logger.Infow("Converting audio",
		"input", mediaPath,
		"output", outputPath,
		"format", format,
		"sample_rate", sampleRate,
		"channels", channels,
	)

	opts := audio.CompressionOptions{
		Format:     format,
		SampleRate: sampleRate,
		Channels:   channels,
		Bitrate:    bitrate,
	}

	ctx := context.Background()
	if err := audio.CompressAudio(ctx, mediaPath, outputPath, opts); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Audio converted successfully: %s\n", absOutput)

	return nil
}
