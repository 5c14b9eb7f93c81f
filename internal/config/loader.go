package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded names the built-in configuration in Loaded.Source.
const SourceEmbedded = "embedded"

// Loaded is a configuration together with where it came from.
type Loaded struct {
	Config Config
	Source string // file path, or SourceEmbedded
}

// Load loads the stairbeat configuration. Values missing from a file keep
// their defaults.
// Search order: customPath -> ~/.stairbeat/config.yaml -> ./configs/stairbeat.yaml -> embedded default
func Load(customPath string) (Loaded, error) {
	// A custom path must exist and parse
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Config: cfg, Source: customPath}, nil
	}

	// User and local files are optional; unreadable ones are skipped
	for _, path := range []string{userConfigPath(), filepath.Join("configs", "stairbeat.yaml")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Config: cfg, Source: path}, nil
	}

	cfg, err := parse(defaultYAML, SourceEmbedded)
	if err != nil {
		// Fallback to hardcoded if the embed is broken
		return Loaded{Config: Default(), Source: SourceEmbedded}, nil
	}
	return Loaded{Config: cfg, Source: SourceEmbedded}, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is chosen by the user
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(data, path)
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stairbeat", "config.yaml")
}

// Dir returns the per-user stairbeat directory, ~/.stairbeat.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".stairbeat"), nil
}
