package engine

import "time"

// Judgment and progression rules. These formulas are fixed; nothing in the
// platform tunes them.
const (
	MaxEnergy      = 100.0
	StartBPM       = 100
	BPMIncrement   = 2
	BPMEvery       = 10 // successful steps between tempo increases
	BonusEnergy    = 20.0
	BonusEvery     = 20 // successful steps between energy bonuses
	MissPenalty    = 5.0
	SeedSegments   = 50
	EvictionLag    = 10 // segments kept behind the player
	StepsPerFloor  = flightLength
	PauseThreshold = 1500 * time.Millisecond

	perfectWindow   = 100.0 // ms
	greatWindow     = 150.0 // ms
	goodWindow      = 250.0 // ms
	freshStartAward = 10
)

// Side is the foot the player must step with next.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// ParseSide normalizes an input token. Arrow keys and letter keys map to the
// same two sides; "up" and unknown tokens are rejected.
func ParseSide(token string) (Side, bool) {
	switch token {
	case "left", "a", "ArrowLeft":
		return SideLeft, true
	case "right", "d", "ArrowRight":
		return SideRight, true
	}
	return SideLeft, false
}

// Result is the outcome of judging one input.
type Result int

const (
	ResultNone Result = iota
	ResultPerfect
	ResultGreat
	ResultGood
	ResultBad
	ResultMiss
)

// String returns the display name of the result.
func (r Result) String() string {
	switch r {
	case ResultPerfect:
		return "Perfect"
	case ResultGreat:
		return "Great"
	case ResultGood:
		return "Good"
	case ResultBad:
		return "Bad"
	case ResultMiss:
		return "Miss"
	default:
		return ""
	}
}

// Success reports whether the result advances the player.
func (r Result) Success() bool {
	return r == ResultPerfect || r == ResultGreat || r == ResultGood
}

// Phase is the state machine's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "idle"
	}
}

// Snapshot is a read-only copy of the game state for renderers and tests.
type Snapshot struct {
	Phase        Phase
	IsPlaying    bool
	IsGameOver   bool
	TotalSteps   int
	CurrentFloor int
	Score        int
	Combo        int
	BestCombo    int
	BPM          int
	LastStepTime time.Time
	NextInput    Side
	Energy       float64
	MaxEnergy    float64
	LastResult   Result
	Stairs       []Segment
}
