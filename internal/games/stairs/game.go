// Package stairs implements the rhythm stair climber.
// The player alternates left and right steps on the beat to climb an endless
// staircase that turns at every landing.
package stairs

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/stairbeat/internal/core"
	"github.com/vovakirdan/stairbeat/internal/games/stairs/engine"
	"github.com/vovakirdan/stairbeat/internal/registry"
)

// maxDecayGap caps the time a single tick may drain. Longer gaps come from a
// stalled host, not from the player.
const maxDecayGap = 250 * time.Millisecond

// Settings are the host-side knobs of the climber. None of them touch the
// judgment formulas.
type Settings struct {
	DecayPerSecond float64 // energy drained per second of play
	Lookahead      int     // upcoming stairs drawn ahead of the player
	BeatIndicator  bool    // draw the converging beat bars
}

// DefaultSettings returns the settings the game ships with.
func DefaultSettings() Settings {
	return Settings{
		DecayPerSecond: 2,
		Lookahead:      12,
		BeatIndicator:  true,
	}
}

var (
	settingsMu sync.RWMutex
	settings   = DefaultSettings()
)

// SetSettings replaces the settings used by games created afterwards.
func SetSettings(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Game adapts the engine to the platform's fixed-tick game loop.
type Game struct {
	engine   *engine.Engine
	clock    engine.Clock
	settings Settings
	config   core.RuntimeConfig

	paused   bool
	lastTick time.Time // last time decay was applied
	resultAt time.Time // when LastResult was judged, for the fading label
}

// New creates a climber using the wall clock.
func New() *Game {
	return NewWithClock(time.Now)
}

// NewWithClock creates a climber driven by the given clock.
func NewWithClock(clock engine.Clock) *Game {
	return &Game{
		engine:   engine.New(clock, nil),
		clock:    clock,
		settings: currentSettings(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "stairs"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Stairbeat"
}

// Reset starts a new climb. The seed fixes the sequence of turns.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false
	g.resultAt = time.Time{}

	g.engine.SetTurns(engine.RandomTurns(rand.New(rand.NewSource(cfg.Seed)))) //#nosec G404 -- gameplay randomness
	g.engine.StartGame()
	g.lastTick = g.clock()
}

// Press judges a directional action at the moment it was received.
// It reports whether the action was consumed.
func (g *Game) Press(a core.Action, at time.Time) bool {
	tok := a.Token()
	if tok == "" || g.paused || g.engine.Phase() != engine.PhaseActive {
		return false
	}
	if g.engine.StepAt(tok, at) == engine.ResultNone {
		return false
	}
	g.resultAt = at
	return true
}

// Step advances one tick: pause toggling, any directional actions not
// delivered through Press, then energy decay for the elapsed time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	now := g.clock()

	if g.engine.Phase() != engine.PhaseActive {
		g.lastTick = now
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.lastTick = now
	}
	if g.paused {
		g.lastTick = now
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		g.Press(a, now)
	}

	elapsed := now.Sub(g.lastTick)
	if elapsed > maxDecayGap {
		elapsed = maxDecayGap
	}
	if elapsed > 0 {
		g.engine.Decay(g.settings.DecayPerSecond * elapsed.Seconds())
	}
	g.lastTick = now

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.engine.Snapshot()
	return core.GameState{
		Score:    s.Score,
		GameOver: s.IsGameOver,
		Paused:   g.paused,
		Progress: core.Progress{
			Floor: s.CurrentFloor,
			Steps: s.TotalSteps,
			BPM:   s.BPM,
		},
	}
}

// Engine exposes the underlying rules engine to tools and tests.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Register the game with the registry
func init() {
	registry.Register("stairs", func() registry.Game {
		return New()
	})
}
