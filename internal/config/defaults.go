package config

import (
	_ "embed"
)

//go:embed defaults/stairbeat.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. The embedded YAML carries the
// same values and is what users copy to start their own file.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate:       60,
			DecayPerSecond: 2,
		},
		View: ViewConfig{
			Lookahead:     12,
			BeatIndicator: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}
