package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fumikura/jimaku/internal/config"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given. Its absence is fine; the built-in defaults apply.
const defaultConfigFile = "jimaku.toml"

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	return config.Load(path, required)
}

// resolveOutputDir returns the --output-dir flag, falling back to the
// input file's directory.
func resolveOutputDir(cmd *cobra.Command, inputPath string) string {
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		return dir
	}
	return filepath.Dir(inputPath)
}

func baseNameWithoutExt(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// resolveAPIKey returns the flag value when set, otherwise the provider's
// conventional environment variable.
func resolveAPIKey(flagValue, provider string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	var envVar string
	switch provider {
	case "openai":
		envVar = "OPENAI_API_KEY"
	case "gemini":
		envVar = "GEMINI_API_KEY"
	case "anthropic":
		envVar = "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%s API key is required: use the flag or set %s", provider, envVar)
}
