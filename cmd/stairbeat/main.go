// stairbeat is a rhythm stair climber for the terminal.
//
// Usage:
//
//	stairbeat play           - Climb right away
//	stairbeat menu           - Start screen with the scoreboard
//	stairbeat serve          - Start SSH server for remote play
//	stairbeat list           - List available games
//	stairbeat path           - Print the generated staircase for a seed
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default from config, 60)
//	--seed <value>       - Set RNG seed for a reproducible staircase
//	--config <path>      - Use a custom config file
//	--log-file <path>    - Write logs to a rotating file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stairbeat/internal/config"
	"github.com/vovakirdan/stairbeat/internal/core"
	"github.com/vovakirdan/stairbeat/internal/games/stairs"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogFile  string
	flagLogLevel string

	// appConfig is loaded before any subcommand runs
	appConfig config.Loaded
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stairbeat",
	Short: "Stairbeat - climb an endless staircase to the beat",
	Long: `Stairbeat is a rhythm game for the terminal. Step with alternating
feet on the beat to climb an endless staircase. Good timing scores and
heals, bad timing drains your energy, and the tempo keeps rising.

Available commands:
  play     - Start climbing right away
  menu     - Start screen with scoreboard
  serve    - Start SSH server for remote play
  list     - Show available games
  path     - Print the generated staircase for a seed

Examples:
  stairbeat play
  stairbeat play --seed 42
  stairbeat menu --fps 30
  stairbeat serve --ssh :2222
  stairbeat path --seed 42 --count 30`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pathCmd)
}

// loadConfig reads the config file, applies flag overrides and hands the
// game settings to the climber.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	cfg := &loaded.Config
	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	stairs.SetSettings(stairs.Settings{
		DecayPerSecond: cfg.Game.DecayPerSecond,
		Lookahead:      cfg.View.Lookahead,
		BeatIndicator:  cfg.View.BeatIndicator,
	})

	appConfig = loaded
	return nil
}

// runtimeConfig builds the game config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appConfig.Config.Game.TickRate,
		Seed:     flagSeed,
	}
}
