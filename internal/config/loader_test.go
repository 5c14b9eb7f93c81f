package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v\nexpected %+v", cfg, Default())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Source != SourceEmbedded || loaded.Config != Default() {
		t.Errorf("Load() = %+v, expected embedded defaults", loaded)
	}
}

func TestLoadCustomPathMergesDefaults(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "custom.yaml", "game:\n  tick_rate: 30\nserver:\n  idle_timeout_minutes: 5\n")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg := loaded.Config
	if cfg.Game.TickRate != 30 || cfg.Server.IdleTimeout() != 5*time.Minute {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Game.DecayPerSecond != 2 || cfg.View.Lookahead != 12 || cfg.Server.Address != ":23234" {
		t.Errorf("missing values lost their defaults: %+v", cfg)
	}
	if loaded.Source != path {
		t.Errorf("Source = %q, expected %q", loaded.Source, path)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "config: read"},
		{"malformed", writeFile(t, dir, "bad.yaml", "game: [1, 2"), "config: parse"},
		{"invalid", writeFile(t, dir, "zero.yaml", "game:\n  tick_rate: 0\n"), "tick_rate must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load(%s) error = %v, expected %q", tt.name, err, tt.want)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, ".", filepath.Join("configs", "stairbeat.yaml"), "view:\n  lookahead: 4\n")
	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Config.View.Lookahead != 4 || loaded.Source != filepath.Join("configs", "stairbeat.yaml") {
		t.Errorf("local config not used: %+v", loaded)
	}

	user := writeFile(t, home, filepath.Join(".stairbeat", "config.yaml"), "view:\n  lookahead: 20\n")
	loaded, err = Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Config.View.Lookahead != 20 || loaded.Source != user {
		t.Errorf("user config should win over local: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative decay", func(c *Config) { c.Game.DecayPerSecond = -1 }, "decay_per_second"},
		{"negative lookahead", func(c *Config) { c.View.Lookahead = -3 }, "lookahead"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative rotation", func(c *Config) { c.Log.MaxBackups = -1 }, "rotation"},
		{"no address", func(c *Config) { c.Server.Address = "" }, "server.address"},
		{"negative idle", func(c *Config) { c.Server.IdleMinutes = -1 }, "idle_timeout_minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Game.TickRate = 0
	cfg.Server.Address = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "tick_rate") || !strings.Contains(err.Error(), "server.address") {
		t.Errorf("Validate() = %v, expected both problems", err)
	}
}
