// Package engine implements the stair climber's rules: the staircase
// generator and the rhythm judge that drives progression.
//
// The engine is not safe for concurrent use. The host delivers Step, Decay
// and Heal calls one at a time from its event loop.
package engine

import (
	"math"
	"math/rand"
	"time"
)

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// Engine holds one session's game state and applies every transition to it.
type Engine struct {
	now   Clock
	turns TurnFunc

	phase        Phase
	totalSteps   int
	currentFloor int
	score        int
	combo        int
	bestCombo    int
	bpm          int
	lastStepTime time.Time
	nextInput    Side
	energy       float64
	lastResult   Result
	stairs       *Window
}

// New creates an idle engine. A nil clock means time.Now; nil turns means a
// time-seeded coin flip.
func New(now Clock, turns TurnFunc) *Engine {
	if now == nil {
		now = time.Now
	}
	if turns == nil {
		turns = RandomTurns(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	e := &Engine{
		now:    now,
		turns:  turns,
		stairs: NewWindow(SeedSegments + EvictionLag + 4),
	}
	e.Reset()
	return e
}

// SetTurns replaces the turn source, typically with a freshly seeded one
// before StartGame.
func (e *Engine) SetTurns(turns TurnFunc) {
	if turns != nil {
		e.turns = turns
	}
}

// Reset returns every field to its idle default and clears the stairs.
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.totalSteps = 0
	e.currentFloor = 1
	e.score = 0
	e.combo = 0
	e.bestCombo = 0
	e.bpm = StartBPM
	e.lastStepTime = time.Time{}
	e.nextInput = SideLeft
	e.energy = MaxEnergy
	e.lastResult = ResultNone
	e.stairs.Clear()
}

// StartGame discards the previous run, seeds a fresh staircase and starts
// the beat clock.
func (e *Engine) StartGame() {
	e.Reset()

	var prev *Segment
	for id := 0; id < SeedSegments; id++ {
		seg := Next(prev, id, e.turns)
		e.stairs.Push(seg)
		prev = &seg
	}

	e.phase = PhaseActive
	e.lastStepTime = e.now()
}

// BeatInterval returns the current time between beats.
func (e *Engine) BeatInterval() time.Duration {
	return time.Duration(float64(time.Minute) / float64(e.bpm))
}

// BeatProgress returns how far the beat has advanced since the last step:
// 0 right after a step, 1 on the beat, capped at 1.2.
func (e *Engine) BeatProgress(now time.Time) float64 {
	if e.phase != PhaseActive {
		return 0
	}
	p := float64(now.Sub(e.lastStepTime)) / float64(e.BeatInterval())
	return math.Min(math.Max(p, 0), 1.2)
}

// verdict is what a single input earns before it is committed.
type verdict struct {
	result      Result
	energyDelta float64
	award       int
	keepCombo   bool // fresh-start steps neither grow nor break the combo
}

// judge classifies a correct-side input by its distance from the beat.
func (e *Engine) judge(sinceLast time.Duration) verdict {
	if e.totalSteps == 0 || sinceLast > PauseThreshold {
		return verdict{result: ResultPerfect, award: freshStartAward, keepCombo: true}
	}

	beat := 60000.0 / float64(e.bpm)
	errMs := math.Abs(float64(sinceLast)/float64(time.Millisecond) - beat)

	switch {
	case errMs < perfectWindow:
		return verdict{result: ResultPerfect, energyDelta: 1, award: 100 + e.combo*10}
	case errMs < greatWindow:
		return verdict{result: ResultGreat, energyDelta: 0, award: 80 + e.combo*5}
	case errMs < goodWindow:
		return verdict{result: ResultGood, energyDelta: -1, award: 50}
	default:
		return verdict{result: ResultBad, energyDelta: -MissPenalty}
	}
}

// Step judges one input token against the engine clock and applies the
// outcome. It returns the judgment, or ResultNone when the input was ignored.
func (e *Engine) Step(input string) Result {
	if e.phase != PhaseActive {
		return ResultNone
	}
	return e.StepAt(input, e.now())
}

// StepAt is Step for an input received at a known time, such as a key event
// timestamped by the terminal host before the next frame.
func (e *Engine) StepAt(input string, now time.Time) Result {
	if e.phase != PhaseActive {
		return ResultNone
	}
	side, ok := ParseSide(input)
	if !ok {
		return ResultNone
	}

	if side != e.nextInput {
		e.fail(ResultMiss, -MissPenalty, now)
		return ResultMiss
	}

	v := e.judge(now.Sub(e.lastStepTime))
	if !v.result.Success() {
		e.fail(v.result, v.energyDelta, now)
		return v.result
	}

	e.advance(v, now)
	return v.result
}

// fail applies a Miss or Bad: energy loss, broken combo, no movement.
func (e *Engine) fail(r Result, energyDelta float64, now time.Time) {
	e.combo = 0
	e.lastResult = r
	e.lastStepTime = now
	e.commitEnergy(e.energy + energyDelta)
}

// advance applies a successful step. The new segment is built before any
// field changes so a contract violation leaves the state untouched.
func (e *Engine) advance(v verdict, now time.Time) {
	tail, ok := e.stairs.Back()
	if !ok {
		panic("stairs: cannot extend an empty stair window")
	}
	next := Next(&tail, tail.ID+1, e.turns)

	steps := e.totalSteps + 1
	e.totalSteps = steps
	e.currentFloor = steps/StepsPerFloor + 1
	if steps%BPMEvery == 0 {
		e.bpm += BPMIncrement
	}
	e.nextInput = e.nextInput.Opposite()
	if !v.keepCombo {
		e.combo++
		if e.combo > e.bestCombo {
			e.bestCombo = e.combo
		}
	}
	e.score += v.award
	e.lastResult = v.result
	e.lastStepTime = now

	e.stairs.Push(next)
	e.stairs.EvictBefore(steps - EvictionLag)

	energy := e.energy + v.energyDelta
	if steps%BonusEvery == 0 {
		energy += BonusEnergy
	}
	e.commitEnergy(energy)
}

// commitEnergy is the single place energy changes: it clamps to
// [0, MaxEnergy] and ends the game when nothing is left.
func (e *Engine) commitEnergy(energy float64) {
	e.energy = math.Min(MaxEnergy, math.Max(0, energy))
	if e.energy <= 0 {
		e.phase = PhaseGameOver
	}
}

// Decay drains energy over real time and breaks the combo. Negative and NaN
// amounts count as zero.
func (e *Engine) Decay(amount float64) {
	if e.phase != PhaseActive {
		return
	}
	if !(amount > 0) {
		amount = 0
	}
	e.combo = 0
	e.commitEnergy(e.energy - amount)
}

// TakeDamage is Decay under the name collaborators use for hits.
func (e *Engine) TakeDamage(amount float64) {
	e.Decay(amount)
}

// Heal restores energy up to MaxEnergy. It never changes the combo or the
// phase, and a finished game stays finished. Non-finite amounts are ignored.
func (e *Engine) Heal(amount float64) {
	if !(amount > 0) || math.IsInf(amount, 0) || e.phase == PhaseGameOver {
		return
	}
	e.energy = math.Min(MaxEnergy, e.energy+amount)
}

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// NextInput returns the side the player must press next.
func (e *Engine) NextInput() Side {
	return e.nextInput
}

// Current returns the segment the player stands on.
func (e *Engine) Current() (Segment, bool) {
	return e.stairs.Find(e.totalSteps)
}

// Segment returns a buffered segment by id, e.g. the camera's look-ahead.
func (e *Engine) Segment(id int) (Segment, bool) {
	return e.stairs.Find(id)
}

// Stairs returns a copy of the buffered segments, oldest first.
func (e *Engine) Stairs() []Segment {
	return e.stairs.Slice()
}

// Snapshot returns a copy of the whole state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:        e.phase,
		IsPlaying:    e.phase == PhaseActive,
		IsGameOver:   e.phase == PhaseGameOver,
		TotalSteps:   e.totalSteps,
		CurrentFloor: e.currentFloor,
		Score:        e.score,
		Combo:        e.combo,
		BestCombo:    e.bestCombo,
		BPM:          e.bpm,
		LastStepTime: e.lastStepTime,
		NextInput:    e.nextInput,
		Energy:       e.energy,
		MaxEnergy:    MaxEnergy,
		LastResult:   e.lastResult,
		Stairs:       e.stairs.Slice(),
	}
}
