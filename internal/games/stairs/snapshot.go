package stairs

import "math"

// Snapshot contains the observable game state, flattened to primitive types
// so two runs can be compared cheaply.
type Snapshot struct {
	Phase      string
	Paused     bool
	TotalSteps int
	Floor      int
	Score      int
	Combo      int
	BPM        int
	Energy     float64
	NextInput  string
	LastResult string

	// Stair window (each stair is 5 values: ID, X, Y, Z, Rotation)
	StairCount int
	StairData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.engine.Snapshot()

	data := make([]float64, 0, len(s.Stairs)*5)
	for _, seg := range s.Stairs {
		data = append(data, float64(seg.ID), seg.Position.X, seg.Position.Y, seg.Position.Z, seg.Rotation)
	}

	return Snapshot{
		Phase:      s.Phase.String(),
		Paused:     g.paused,
		TotalSteps: s.TotalSteps,
		Floor:      s.CurrentFloor,
		Score:      s.Score,
		Combo:      s.Combo,
		BPM:        s.BPM,
		Energy:     s.Energy,
		NextInput:  s.NextInput.String(),
		LastResult: s.LastResult.String(),
		StairCount: len(s.Stairs),
		StairData:  data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.TotalSteps)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BPM)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.StairCount) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Energy)
	if snap.Paused {
		h = h*31 + 1
	}

	for _, s := range []string{snap.Phase, snap.NextInput, snap.LastResult} {
		for _, r := range s {
			h = h*31 + uint64(r) //#nosec G115 -- hash computation
		}
	}

	for _, v := range snap.StairData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
