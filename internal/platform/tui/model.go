package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stairbeat/internal/core"
	"github.com/vovakirdan/stairbeat/internal/registry"
	"github.com/vovakirdan/stairbeat/internal/storage"
)

// GameOptions carries what a GameModel needs besides the game itself.
// Every field is optional.
type GameOptions struct {
	Store    *storage.Store
	Logger   *log.Logger
	Player   string           // recorded with each run
	Embedded bool             // hosted by a SessionModel; B returns to the menu
	Now      func() time.Time // timestamp for key presses, defaults to time.Now
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game     registry.Game
	realtime registry.RealtimeGame // nil when the game only reads tick frames
	keys     *KeyMapper
	help     help.Model
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	player   string
	embedded bool
	now      func() time.Time
	config   core.RuntimeConfig

	inputFrame core.InputFrame
	gameState  core.GameState
	startedAt  time.Time
	runSaved   bool // whether the current game over has been recorded
	backToMenu bool
	quitting   bool
}

// NewGameModel creates a model for game and starts the first run.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	rt, _ := registry.Realtime(game)
	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		realtime:   rt,
		keys:       NewKeyMapper(),
		help:       h,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      opts.Store,
		logger:     opts.Logger,
		player:     opts.Player,
		embedded:   opts.Embedded,
		now:        opts.Now,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	m.start()
	return m
}

// playHeight leaves the bottom row for the help bar.
func playHeight(h int) int {
	return core.Max(h-1, 0)
}

// start resets the game for a new run.
func (m *GameModel) start() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.startedAt = m.now()
	m.runSaved = false
	m.logger.Debug("run started", "game", m.game.ID(), "seed", m.config.Seed, "player", m.player)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The staircase is drawn relative to the screen, so the run survives
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Foot presses go straight to games that
// judge timing, so the verdict does not wait for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionLeft, core.ActionRight, core.ActionUp:
		if m.realtime != nil {
			m.realtime.Press(action, m.now())
			m.gameState = m.game.State()
			return m, nil
		}
	case core.ActionBack:
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.start()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun logs the finished run and adds it to the run log.
func (m *GameModel) recordRun() {
	p := m.gameState.Progress
	run := storage.Run{
		Player:     m.player,
		Score:      m.gameState.Score,
		Floor:      p.Floor,
		Steps:      p.Steps,
		BPM:        p.BPM,
		Seed:       m.config.Seed,
		Duration:   m.now().Sub(m.startedAt),
		FinishedAt: m.now(),
	}

	m.logger.Info("game over",
		"player", m.player,
		"score", run.Score,
		"floor", run.Floor,
		"steps", run.Steps,
		"bpm", run.BPM,
		"duration", run.Duration.Round(time.Millisecond),
	)

	// Runs that never left the ground are not worth a scoreboard row
	if m.store == nil || run.Steps == 0 {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("could not save run", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// State returns the game state as of the last tick or press.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	opts.Embedded = false
	p := tea.NewProgram(
		NewGameModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
