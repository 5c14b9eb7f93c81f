package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stairbeat/internal/platform/tui"
	"github.com/vovakirdan/stairbeat/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start screen with the scoreboard",
	Long: `Open the start screen. Pick a game to climb; after a game over press
B to come back and see your run on the scoreboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

The scoreboard lists the runs of this session only.

Examples:
  stairbeat menu
  stairbeat menu --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) (err error) {
	logger, closeLog := newLogger(appConfig.Config.Log, io.Discard, "stairbeat")
	defer func() {
		err = errors.Join(err, closeLog())
	}()

	store, err := storage.Open()
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	return tui.RunSession(runtimeConfig(), tui.GameOptions{
		Store:  store,
		Logger: logger,
		Player: localPlayer(),
	})
}
