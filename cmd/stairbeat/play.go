package main

import (
	"errors"
	"fmt"
	"io"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stairbeat/internal/platform/tui"
	"github.com/vovakirdan/stairbeat/internal/registry"
	"github.com/vovakirdan/stairbeat/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Start climbing",
	Long: `Start a climb right away. The game defaults to stairs.

Controls:
  A/Left     - Left foot
  D/Right    - Right foot
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Step with alternating feet on the beat. The beat bars at the bottom close
in on the foot marker; press when they meet.

Examples:
  stairbeat play
  stairbeat play --seed 42
  stairbeat play --fps 30 --log-file ./stairbeat.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) (err error) {
	gameID := "stairs"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'stairbeat list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger, closeLog := newLogger(appConfig.Config.Log, io.Discard, "stairbeat")
	defer func() {
		err = errors.Join(err, closeLog())
	}()
	logger.Debug("config loaded", "source", appConfig.Source)

	// The run log only lives for this process; it feeds the summary below
	store, openErr := storage.Open()
	if openErr != nil {
		logger.Warn("could not open run log", "error", openErr)
		store = nil
	}

	runErr := tui.Run(game, runtimeConfig(), tui.GameOptions{
		Store:  store,
		Logger: logger,
		Player: localPlayer(),
	})

	if store != nil {
		printSummary(store)
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("closing run log", "error", closeErr)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// printSummary reports the climbs of this session after the TUI exits.
func printSummary(store *storage.Store) {
	st, err := store.Stats()
	if err != nil || st.Runs == 0 {
		return
	}
	fmt.Printf("%d climbs  |  best score %d  |  highest floor %d\n", st.Runs, st.BestScore, st.BestFloor)
}

// localPlayer names runs played on this terminal.
func localPlayer() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
