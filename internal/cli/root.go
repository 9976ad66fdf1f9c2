package cli

import (
	"github.com/spf13/cobra"

	"github.com/fumikura/jimaku/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jimaku",
	Short: "AI-powered subtitle and karaoke generator",
	Long: `Jimaku transcribes audio and video with AI speech recognition and
turns the result into subtitle and lyric files.

The dialogue command produces SRT and styled ASS subtitles, with optional
translation into a second language. The karaoke command produces LRC,
word-synchronized LRC, and karaoke ASS files from songs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output-dir", "o", "", "Directory for output files (default: input file's directory)")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Source language code (e.g., ja, zh, en)")
	rootCmd.PersistentFlags().
		String("config", "", "Path to TOML config file")
}
