package stairs

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/stairbeat/internal/core"
	"github.com/vovakirdan/stairbeat/internal/games/stairs/engine"
)

// Visual characters for rendering
const (
	PlayerChar   = '@'
	TreadZChar   = '═' // step crossed while heading along Z
	TreadXChar   = '║' // step crossed while heading along X
	LandingChar  = '▓'
	EnergyFull   = '█'
	EnergyEmpty  = '░'
	BeatBarChar  = '■'
	treadHalfLen = 2
	hudRows      = 3
	beatRows     = 3
)

// resultFade is how long the last judgment stays on screen.
const resultFade = 700 * time.Millisecond

// resultColor maps a judgment to its HUD color.
func resultColor(r engine.Result) core.Color {
	switch r {
	case engine.ResultPerfect:
		return core.ColorPink
	case engine.ResultGreat:
		return core.ColorGold
	case engine.ResultGood:
		return core.ColorTeal
	default:
		return core.ColorSlate
	}
}

// beatColor colors the beat bars by how close the beat is.
func beatColor(progress float64) core.Color {
	switch {
	case progress > 0.95 && progress < 1.05:
		return core.ColorPink
	case progress > 0.9 && progress < 1.1:
		return core.ColorGold
	case progress > 0.8 && progress < 1.2:
		return core.ColorTeal
	default:
		return core.ColorGray
	}
}

// Render draws the staircase, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.engine.Snapshot()
	now := g.clock()

	g.drawStairs(dst, s)
	g.drawHUD(dst, s, now)
	if g.settings.BeatIndicator && s.IsPlaying {
		g.drawBeat(dst, s, g.engine.BeatProgress(now))
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.IsGameOver {
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Floor %d  |  Score %d  |  Press R to restart", s.CurrentFloor, s.Score))
	}
}

// project maps a world position to a screen cell relative to the player.
// One unit of depth is one row; one unit across is two columns to keep the
// aspect of terminal cells.
func project(p, origin engine.Vec3, cx, cy int) (int, int) {
	d := p.Sub(origin)
	return cx + int(math.Round(d.X*2)), cy + int(math.Round(d.Z))
}

// drawStairs renders the buffered window top-down, centered on the player.
// Stairs are drawn far to near so the closest ones stay on top at turns.
func (g *Game) drawStairs(dst *core.Screen, s engine.Snapshot) {
	cur, ok := g.engine.Current()
	if !ok {
		return
	}

	viewTop := hudRows
	viewH := dst.Height() - hudRows - beatRows
	cx := dst.Width() / 2
	cy := viewTop + viewH*2/3
	// Centers up to a landing's half width off screen still show partly
	view := core.NewRect(-3, viewTop, dst.Width()+6, viewH)

	last := s.TotalSteps + g.settings.Lookahead
	for i := len(s.Stairs) - 1; i >= 0; i-- {
		seg := s.Stairs[i]
		if seg.ID > last {
			continue
		}
		x, y := project(seg.Position, cur.Position, cx, cy)
		if !view.Contains(x, y) {
			continue
		}

		color := core.ColorWhite
		switch {
		case seg.ID < s.TotalSteps:
			color = core.ColorGray
		case seg.ID == s.TotalSteps+1:
			color = core.ColorBrightYellow
		}

		switch {
		case seg.IsLanding:
			drawLanding(dst, x, y, color)
		case seg.Direction.X != 0:
			dst.DrawVLine(x, y-1, 3, TreadXChar, color)
		default:
			dst.DrawHLine(x-treadHalfLen, y, treadHalfLen*2+1, TreadZChar, color)
		}

		if ahead := seg.ID - s.TotalSteps; ahead > 0 && !seg.IsLanding {
			dst.SetColored(x, y, sideHint(s.NextInput, ahead), color)
		}
	}

	x, y := project(cur.Position, cur.Position, cx, cy)
	dst.SetColored(x, y, PlayerChar, core.ColorBrightWhite)
}

// sideHint returns the foot for the stair ahead steps away.
func sideHint(next engine.Side, ahead int) rune {
	side := next
	if ahead%2 == 0 {
		side = next.Opposite()
	}
	if side == engine.SideLeft {
		return 'L'
	}
	return 'R'
}

func drawLanding(dst *core.Screen, x, y int, c core.Color) {
	for dy := -1; dy <= 1; dy++ {
		dst.DrawHLine(x-3, y+dy, 7, LandingChar, c)
	}
}

// drawHUD renders the status rows at the top of the screen.
func (g *Game) drawHUD(dst *core.Screen, s engine.Snapshot, now time.Time) {
	stats := fmt.Sprintf(" FLOOR %d   SCORE %d   COMBO x%d   BPM %d ",
		s.CurrentFloor, s.Score, s.Combo, s.BPM)
	dst.DrawTextColored(1, 0, stats, core.ColorBrightCyan)

	barW := core.Clamp(dst.Width()/3, 10, 30)
	filled := int(math.Round(core.ClampF(s.Energy/s.MaxEnergy, 0, 1) * float64(barW)))
	barColor := core.ColorGreen
	if s.Energy < s.MaxEnergy*0.3 {
		barColor = core.ColorRed
	}
	dst.DrawText(2, 1, "ENERGY")
	dst.DrawHLine(9, 1, barW, EnergyEmpty, core.ColorGray)
	dst.DrawHLine(9, 1, filled, EnergyFull, barColor)
	dst.DrawText(10+barW, 1, fmt.Sprintf("%3.0f", s.Energy))

	if s.LastResult != engine.ResultNone && now.Sub(g.resultAt) < resultFade {
		label := strings.ToUpper(s.LastResult.String()) + "!"
		dst.DrawTextCenteredColored(2, label, resultColor(s.LastResult))
	}
}

// drawBeat renders two bars that close in on the next-foot marker as the
// beat approaches.
func (g *Game) drawBeat(dst *core.Screen, s engine.Snapshot, progress float64) {
	y := dst.Height() - 2
	w := core.Clamp(dst.Width()-10, 10, 60)
	half := w / 2
	left := (dst.Width() - w) / 2
	center := left + half

	color := beatColor(progress)
	reach := int(math.Round(core.ClampF(progress, 0, 1) * float64(half-2)))
	dst.DrawHLine(left, y, reach, BeatBarChar, color)
	dst.DrawHLine(center+2+(half-2-reach), y, reach, BeatBarChar, color)

	marker := "L"
	if s.NextInput == engine.SideRight {
		marker = "R"
	}
	dst.DrawTextColored(center-1, y, "["+marker+"]", core.ColorBrightWhite)
	dst.DrawTextCenteredColored(y+1, "A/← left   D/→ right", core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle)
}
