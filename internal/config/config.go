// Package config provides YAML-based configuration loading for stairbeat.
// It covers presentation and hosting only; the climb's rules are fixed.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the complete stairbeat configuration.
type Config struct {
	Game   GameConfig   `yaml:"game"`
	View   ViewConfig   `yaml:"view"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// GameConfig drives the host loop around the engine.
type GameConfig struct {
	TickRate       int     `yaml:"tick_rate"`        // frames per second
	DecayPerSecond float64 `yaml:"decay_per_second"` // energy drained per second of play
}

// ViewConfig controls what the renderer draws.
type ViewConfig struct {
	Lookahead     int  `yaml:"lookahead"` // upcoming stairs drawn ahead of the player
	BeatIndicator bool `yaml:"beat_indicator"`
}

// LogConfig controls where logs go.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // empty keeps interactive commands quiet
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key"`
	IdleMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleMinutes) * time.Minute
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Game.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("game.tick_rate must be positive, got %d", c.Game.TickRate))
	}
	if c.Game.DecayPerSecond < 0 {
		errs = append(errs, fmt.Errorf("game.decay_per_second must not be negative, got %v", c.Game.DecayPerSecond))
	}
	if c.View.Lookahead < 0 {
		errs = append(errs, fmt.Errorf("view.lookahead must not be negative, got %d", c.View.Lookahead))
	}
	if !validLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, errors.New("log rotation limits must not be negative"))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address must be set"))
	}
	if c.Server.IdleMinutes < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout_minutes must not be negative, got %d", c.Server.IdleMinutes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func validLevel(level string) bool {
	for _, l := range logLevels {
		if level == l {
			return true
		}
	}
	return false
}
