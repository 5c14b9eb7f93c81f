package stairs

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/stairbeat/internal/core"
	"github.com/vovakirdan/stairbeat/internal/games/stairs/engine"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	return c.t
}

func newTestGame(seed int64) (*Game, *testClock) {
	clock := &testClock{t: time.Unix(1_700_000_000, 0)}
	g := NewWithClock(clock.now)
	g.settings = DefaultSettings()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g, clock
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func sideAction(s engine.Side) core.Action {
	if s == engine.SideRight {
		return core.ActionRight
	}
	return core.ActionLeft
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, clock := newTestGame(12345)
		for i := 0; i < 300; i++ {
			clock.t = clock.t.Add(100 * time.Millisecond)
			in := core.NewInputFrame()
			if i%6 == 5 {
				in.Set(sideAction(g.Engine().NextInput()))
			}
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.TotalSteps != 50 {
		t.Errorf("TotalSteps = %d, expected 50", snap1.TotalSteps)
	}
}

func TestGameReset(t *testing.T) {
	g, clock := newTestGame(1)
	g.Press(core.ActionLeft, clock.t)
	g.Step(frame(core.ActionPause))

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2})
	st := g.State()
	if st.Score != 0 || st.GameOver || st.Paused || st.Progress.Steps != 0 {
		t.Errorf("state after reset = %+v", st)
	}
	if g.Engine().Phase() != engine.PhaseActive {
		t.Error("Reset should start a new climb")
	}
}

func TestSameSeedSameStaircase(t *testing.T) {
	a, _ := newTestGame(9)
	b, _ := newTestGame(9)
	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Hash() != sb.Hash() {
		t.Error("same seed produced different staircases")
	}

	// Only three turns fit in the seeded window, so look across a few seeds
	differs := false
	for seed := int64(10); seed < 20; seed++ {
		c, _ := newTestGame(seed)
		sc := c.Snapshot()
		if sc.Hash() != sa.Hash() {
			differs = true
		}
	}
	if !differs {
		t.Error("every seed produced the same staircase")
	}
}

func TestPressUsesReceiptTime(t *testing.T) {
	g, clock := newTestGame(1)
	start := clock.t
	g.Press(core.ActionLeft, start)

	// The tick arrives late; the press keeps its own timestamp
	clock.t = start.Add(640 * time.Millisecond)
	if !g.Press(core.ActionRight, start.Add(600*time.Millisecond)) {
		t.Fatal("press was not consumed")
	}
	if r := g.Engine().Snapshot().LastResult; r != engine.ResultPerfect {
		t.Errorf("result = %v, expected Perfect", r)
	}
}

func TestPressIgnoresNonDirectional(t *testing.T) {
	g, clock := newTestGame(1)
	for _, a := range []core.Action{core.ActionUp, core.ActionConfirm, core.ActionNone} {
		if g.Press(a, clock.t) {
			t.Errorf("Press(%v) should not be consumed", a)
		}
	}
	if g.State().Progress.Steps != 0 {
		t.Error("non-directional presses moved the player")
	}
}

func TestDecayFollowsElapsedTime(t *testing.T) {
	g, clock := newTestGame(1)

	clock.t = clock.t.Add(200 * time.Millisecond)
	g.Step(core.NewInputFrame())
	if e := g.Engine().Snapshot().Energy; math.Abs(e-99.6) > 1e-9 {
		t.Errorf("energy after 0.2s = %v, expected 99.6", e)
	}

	// A stalled host only drains the capped gap
	clock.t = clock.t.Add(10 * time.Second)
	g.Step(core.NewInputFrame())
	if e := g.Engine().Snapshot().Energy; math.Abs(e-99.1) > 1e-9 {
		t.Errorf("energy after a stall = %v, expected 99.1", e)
	}
}

func TestPauseFreezesDecay(t *testing.T) {
	g, clock := newTestGame(1)
	g.Press(core.ActionLeft, clock.t)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 50; i++ {
		clock.t = clock.t.Add(100 * time.Millisecond)
		g.Step(frame(core.ActionRight))
	}
	snap := g.Engine().Snapshot()
	if snap.Energy != engine.MaxEnergy || snap.TotalSteps != 1 {
		t.Errorf("paused game changed: energy=%v steps=%d", snap.Energy, snap.TotalSteps)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Fatal("expected unpaused")
	}

	// The pause outlasted the threshold, so the next step is exempt
	score := g.State().Score
	if !g.Press(core.ActionRight, clock.t) {
		t.Fatal("press after unpause was not consumed")
	}
	if got := g.State().Score - score; got != 10 {
		t.Errorf("step after pause scored %d, expected 10", got)
	}
}

func TestDecayEndsGame(t *testing.T) {
	g, clock := newTestGame(1)
	ticks := 0
	for ticks < 1000 && !g.State().GameOver {
		clock.t = clock.t.Add(250 * time.Millisecond)
		g.Step(core.NewInputFrame())
		ticks++
	}

	if !g.State().GameOver {
		t.Fatal("energy should run out without input")
	}
	// 100 energy at 2 per second is 50 seconds of quarter-second ticks
	if ticks != 200 {
		t.Errorf("game lasted %d ticks, expected 200", ticks)
	}
	if g.Press(core.ActionLeft, clock.t) {
		t.Error("presses after game over must be ignored")
	}
}

func TestStateReportsProgress(t *testing.T) {
	g, clock := newTestGame(3)
	g.Press(core.ActionLeft, clock.t)
	for i := 0; i < 14; i++ {
		clock.t = clock.t.Add(g.Engine().BeatInterval())
		g.Press(sideAction(g.Engine().NextInput()), clock.t)
	}

	p := g.State().Progress
	if p.Steps != 15 || p.Floor != 2 || p.BPM != 102 {
		t.Errorf("progress = %+v, expected 15 steps on floor 2 at 102 BPM", p)
	}
}

func TestRenderHUD(t *testing.T) {
	g, _ := newTestGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"FLOOR 1", "SCORE 0", "BPM 100", "ENERGY", "[L]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	// The player stands two thirds down the stair view, the first flight
	// climbs straight up from there
	if r := screen.Get(40, 15); r != PlayerChar {
		t.Errorf("player cell = %q", r)
	}
	if screen.Get(40, 14) != 'L' || screen.Get(40, 13) != 'R' {
		t.Errorf("step hints = %q %q, expected L then R", screen.Get(40, 14), screen.Get(40, 13))
	}
	if screen.Get(38, 14) != TreadZChar {
		t.Errorf("tread cell = %q", screen.Get(38, 14))
	}
}

func TestRenderShowsResult(t *testing.T) {
	g, clock := newTestGame(1)
	g.Press(core.ActionLeft, clock.t)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(2), "PERFECT!") {
		t.Errorf("result row = %q", screen.Row(2))
	}

	clock.t = clock.t.Add(time.Second)
	g.Render(screen)
	if strings.Contains(screen.Row(2), "PERFECT!") {
		t.Error("result label should fade")
	}
}

func TestRenderOverlays(t *testing.T) {
	g, _ := newTestGame(1)
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause box missing")
	}

	g.Step(frame(core.ActionPause))
	g.Engine().TakeDamage(engine.MaxEnergy)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Floor 1") {
		t.Error("game over box missing floor and score")
	}
}

func TestRenderKeepsStairsInView(t *testing.T) {
	g, clock := newTestGame(3)
	for i := 0; i < 20; i++ {
		clock.t = clock.t.Add(g.Engine().BeatInterval())
		foot := core.ActionLeft
		if g.Engine().NextInput() == engine.SideRight {
			foot = core.ActionRight
		}
		g.Press(foot, clock.t)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	for y := 0; y < screen.Height(); y++ {
		if y >= hudRows && y < screen.Height()-beatRows {
			continue
		}
		if strings.ContainsAny(screen.Row(y), string([]rune{TreadZChar, TreadXChar, LandingChar})) {
			t.Errorf("row %d outside the stair view has stairs: %q", y, screen.Row(y))
		}
	}

	// Energy bar never overflows its width, 80/3 cells
	if n := strings.Count(screen.Row(1), string(EnergyFull)); n > 26 {
		t.Errorf("energy bar filled %d cells, width is 26", n)
	}
}

func TestRenderCentersOverlaySubtitle(t *testing.T) {
	g, _ := newTestGame(1)
	g.Step(frame(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	sub := "Press P to resume"
	for y := 0; y < screen.Height(); y++ {
		if i := strings.Index(screen.Row(y), sub); i >= 0 {
			if col := len([]rune(screen.Row(y)[:i])); col != (80-len(sub))/2 {
				t.Errorf("subtitle starts at column %d, expected %d", col, (80-len(sub))/2)
			}
			return
		}
	}
	t.Error("pause subtitle missing")
}

func TestRenderSmallScreen(t *testing.T) {
	g, _ := newTestGame(1)
	// Must not panic on tiny terminals
	for _, size := range [][2]int{{1, 1}, {10, 5}, {0, 0}} {
		g.Render(core.NewScreen(size[0], size[1]))
	}
}

func TestBeatColor(t *testing.T) {
	tests := []struct {
		progress float64
		want     core.Color
	}{
		{0.5, core.ColorGray},
		{0.85, core.ColorTeal},
		{0.92, core.ColorGold},
		{1.0, core.ColorPink},
		{1.08, core.ColorGold},
		{1.15, core.ColorTeal},
		{1.2, core.ColorGray},
	}
	for _, tt := range tests {
		if got := beatColor(tt.progress); got != tt.want {
			t.Errorf("beatColor(%v) = %v, expected %v", tt.progress, got, tt.want)
		}
	}
}
