// Package config loads the optional TOML configuration file and supplies
// the built-in defaults when no file is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Segmentation SegmentationConfig `toml:"segmentation"`
	Display      DisplayConfig      `toml:"display"`
	Style        StyleConfig        `toml:"style"`
}

// SegmentationConfig controls how transcripts are cut into subtitle spans
// and lyric lines. All values are seconds.
type SegmentationConfig struct {
	GapThreshold      float64 `toml:"gap_threshold"`
	LyricGap          float64 `toml:"lyric_gap"`
	MaxGap            float64 `toml:"max_gap"`
	MaxMergedDuration float64 `toml:"max_merged_duration"`
}

// DisplayConfig controls line wrapping in the dialogue exporters.
type DisplayConfig struct {
	MaxChars int `toml:"max_chars"`
	MaxLines int `toml:"max_lines"`
}

// StyleConfig fills the ASS script headers.
type StyleConfig struct {
	PlayResX int    `toml:"play_res_x"`
	PlayResY int    `toml:"play_res_y"`
	Font     string `toml:"font"`
	FontSize int    `toml:"font_size"`
}

func Default() Config {
	return Config{
		Segmentation: SegmentationConfig{
			GapThreshold:      0.25,
			LyricGap:          1.0,
			MaxGap:            0.02,
			MaxMergedDuration: 7.0,
		},
		Display: DisplayConfig{
			MaxChars: 18,
			MaxLines: 2,
		},
		Style: StyleConfig{
			PlayResX: 1920,
			PlayResY: 1080,
			Font:     "Noto Sans CJK SC",
			FontSize: 54,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// the path was not explicitly requested; callers pass required=true for a
// path the user named on the command line.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Segmentation.GapThreshold < 0 {
		return errors.New("segmentation.gap_threshold must not be negative")
	}
	if c.Segmentation.LyricGap < 0 {
		return errors.New("segmentation.lyric_gap must not be negative")
	}
	if c.Segmentation.MaxGap < 0 {
		return errors.New("segmentation.max_gap must not be negative")
	}
	if c.Segmentation.MaxMergedDuration <= 0 {
		return errors.New("segmentation.max_merged_duration must be positive")
	}
	if c.Display.MaxChars <= 0 {
		return errors.New("display.max_chars must be positive")
	}
	if c.Display.MaxLines <= 0 {
		return errors.New("display.max_lines must be positive")
	}
	if c.Style.PlayResX <= 0 || c.Style.PlayResY <= 0 {
		return errors.New("style resolution must be positive")
	}
	if c.Style.FontSize <= 0 {
		return errors.New("style.font_size must be positive")
	}
	return nil
}
