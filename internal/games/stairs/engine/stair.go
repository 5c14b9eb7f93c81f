package engine

import (
	"math"
	"math/rand"
)

// Staircase geometry.
const (
	StepHeight     = 0.5 // vertical rise between consecutive segments
	StepDepth      = 1.0 // center-to-center spacing between ordinary steps
	LandingSpacing = 2.0 // spacing into a landing, which is deeper than a step
	StepsPerFlight = 12  // ordinary steps between landings
	flightLength   = StepsPerFlight + 1
)

// Origin heading: the first flight climbs towards -Z.
var originHeading = Vec3{0, 0, -1}

// Segment is one stair: an ordinary step or a landing.
// Segments are values and never change after creation.
type Segment struct {
	ID        int     // position index along the path
	Position  Vec3    // center of the segment
	Rotation  float64 // yaw in radians
	IsLanding bool
	Direction Vec3 // heading used to place the next segment
}

// Turn is the direction the path takes when it leaves a landing.
type Turn int

const (
	TurnLeft Turn = iota
	TurnRight
)

// String returns the turn name.
func (t Turn) String() string {
	if t == TurnRight {
		return "right"
	}
	return "left"
}

// angle returns the rotation about +Y for this turn.
func (t Turn) angle() float64 {
	if t == TurnRight {
		return -math.Pi / 2
	}
	return math.Pi / 2
}

// TurnFunc decides which way the next flight turns.
type TurnFunc func() Turn

// RandomTurns returns an unweighted coin flip backed by rng.
func RandomTurns(rng *rand.Rand) TurnFunc {
	return func() Turn {
		if rng.Intn(2) == 1 {
			return TurnRight
		}
		return TurnLeft
	}
}

// IsLanding reports whether the segment with the given id is a landing.
// Every 13th segment (ids 12, 25, 38, ...) is one.
func IsLanding(id int) bool {
	return (id+1)%flightLength == 0
}

// Origin returns the first segment of every staircase.
func Origin() Segment {
	return Segment{
		ID:        0,
		Position:  Vec3{},
		Rotation:  0,
		IsLanding: false,
		Direction: originHeading,
	}
}

// Generate builds segment id from its predecessor. A nil predecessor yields
// the origin. The turn is only consulted when prev is a landing, so the result
// is a pure function of (prev, id, turn).
func Generate(prev *Segment, id int, turn Turn) Segment {
	if prev == nil {
		return Origin()
	}

	rise := Vec3{Y: StepHeight}

	if prev.IsLanding {
		heading := prev.Direction.RotateY(turn.angle()).Round()
		return Segment{
			ID:        id,
			Position:  prev.Position.Add(heading.Scale(2 * StepDepth)).Add(rise),
			Rotation:  heading.Yaw() + math.Pi,
			IsLanding: false,
			Direction: heading,
		}
	}

	landing := IsLanding(id)
	hop := StepDepth
	if landing {
		hop = LandingSpacing
	}
	return Segment{
		ID:        id,
		Position:  prev.Position.Add(prev.Direction.Scale(hop)).Add(rise),
		Rotation:  prev.Rotation,
		IsLanding: landing,
		Direction: prev.Direction,
	}
}

// Next draws a turn from turns only when one is needed and builds segment id.
func Next(prev *Segment, id int, turns TurnFunc) Segment {
	turn := TurnLeft
	if prev != nil && prev.IsLanding {
		turn = turns()
	}
	return Generate(prev, id, turn)
}

// Path generates the first n segments of a staircase.
func Path(n int, turns TurnFunc) []Segment {
	out := make([]Segment, 0, n)
	var prev *Segment
	for id := 0; id < n; id++ {
		seg := Next(prev, id, turns)
		out = append(out, seg)
		prev = &out[len(out)-1]
	}
	return out
}
