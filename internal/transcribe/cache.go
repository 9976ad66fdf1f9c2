package transcribe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fumikura/jimaku/internal/segment"
)

// cachedResult is the on-disk form of a transcription. Segments keep their
// raw timestamps so a cached run reproduces the exact same output files.
type cachedResult struct {
	Language string            `json:"language"`
	Duration float64           `json:"duration"`
	Segments []segment.Segment `json:"segments"`
}

// CachePath returns where the raw transcription for inputPath is cached.
// Song transcriptions get their own file so dialogue and karaoke runs over
// the same input do not clobber each other.
func CachePath(outputDir, inputPath string, song bool) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	suffix := "_raw.json"
	if song {
		suffix = "_song_raw.json"
	}
	return filepath.Join(outputDir, base+suffix)
}

// SaveCache writes the transcription result next to the output files.
func SaveCache(path string, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cachedResult{
		Language: result.Language,
		Duration: result.Duration.Seconds(),
		Segments: result.Segments,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache %s: %w", path, err)
	}
	return nil
}

// LoadCache reads a previously saved transcription. A missing file returns
// (nil, nil) so callers can fall through to a fresh transcription.
func LoadCache(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache %s: %w", path, err)
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to parse cache %s: %w", path, err)
	}

	return &Result{
		Segments: cached.Segments,
		Language: cached.Language,
		Duration: time.Duration(cached.Duration * float64(time.Second)),
	}, nil
}
