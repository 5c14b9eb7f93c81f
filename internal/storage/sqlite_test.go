package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmptyStore(t *testing.T) {
	store := openStore(t)

	best, err := store.BestScore()
	if err != nil || best != 0 {
		t.Errorf("BestScore() = %d, %v, expected 0", best, err)
	}

	runs, err := store.TopRuns(10)
	if err != nil || len(runs) != 0 {
		t.Errorf("TopRuns() = %v, %v, expected none", runs, err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() = %+v, expected empty", stats)
	}
}

func TestSaveRunAssignsID(t *testing.T) {
	store := openStore(t)

	id, err := store.SaveRun(Run{Score: 120, Floor: 2, Steps: 14, BPM: 102})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a UUID: %v", id, err)
	}

	runs, err := store.TopRuns(1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != id || runs[0].FinishedAt.IsZero() {
		t.Errorf("TopRuns() = %+v", runs)
	}

	// A caller-supplied ID is kept, and reusing it fails
	if got, err := store.SaveRun(Run{ID: "fixed", Score: 1}); err != nil || got != "fixed" {
		t.Errorf("SaveRun(fixed) = %q, %v", got, err)
	}
	if _, err := store.SaveRun(Run{ID: "fixed", Score: 2}); err == nil {
		t.Error("duplicate ID should fail")
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	runs := []Run{
		{Player: "a", Score: 100, Floor: 1, FinishedAt: base},
		{Player: "b", Score: 900, Floor: 5, FinishedAt: base.Add(time.Second)},
		{Player: "c", Score: 450, Floor: 3, FinishedAt: base.Add(2 * time.Second)},
		{Player: "d", Score: 900, Floor: 6, FinishedAt: base.Add(3 * time.Second)},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	want := []string{"b", "d", "c"}
	if len(top) != len(want) {
		t.Fatalf("TopRuns(3) returned %d runs", len(top))
	}
	for i, p := range want {
		if top[i].Player != p {
			t.Errorf("rank %d = %s, expected %s", i+1, top[i].Player, p)
		}
	}
	if !top[0].FinishedAt.Equal(base.Add(time.Second)) {
		t.Errorf("FinishedAt = %v, expected round trip", top[0].FinishedAt)
	}
}

func TestRunRoundTrip(t *testing.T) {
	store := openStore(t)
	in := Run{
		Player:     "alice",
		Score:      2310,
		Floor:      4,
		Steps:      47,
		BPM:        108,
		Seed:       -42,
		Duration:   83 * time.Second,
		FinishedAt: time.UnixMilli(1_700_000_123_456),
	}
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	top, err := store.TopRuns(0)
	if err != nil || len(top) != 1 {
		t.Fatalf("TopRuns() = %v, %v", top, err)
	}
	in.ID = id
	got := top[0]
	if got.ID != in.ID || got.Player != in.Player || got.Score != in.Score || got.Floor != in.Floor ||
		got.Steps != in.Steps || got.BPM != in.BPM || got.Seed != in.Seed || got.Duration != in.Duration ||
		!got.FinishedAt.Equal(in.FinishedAt) {
		t.Errorf("round trip = %+v\nexpected %+v", got, in)
	}
}

func TestStats(t *testing.T) {
	store := openStore(t)
	last := time.UnixMilli(1_700_000_500_000)

	for _, r := range []Run{
		{Score: 100, Floor: 1, Steps: 10, FinishedAt: last.Add(-time.Minute)},
		{Score: 300, Floor: 4, Steps: 50, FinishedAt: last},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.BestScore != 300 || st.BestFloor != 4 || st.TotalSteps != 60 || st.AvgScore != 200 {
		t.Errorf("Stats() = %+v", st)
	}
	if !st.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", st.LastPlayed, last)
	}

	best, err := store.BestScore()
	if err != nil || best != 300 {
		t.Errorf("BestScore() = %d, %v", best, err)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := openStore(t)
	b := openStore(t)

	if _, err := a.SaveRun(Run{Score: 5}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if st, _ := b.Stats(); st.Runs != 0 {
		t.Error("separate stores should not share runs")
	}
}

func TestConcurrentSaves(t *testing.T) {
	store := openStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SaveRun(Run{Score: score}); err != nil {
				t.Errorf("SaveRun() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	st, err := store.Stats()
	if err != nil || st.Runs != 20 {
		t.Errorf("Stats() = %+v, %v, expected 20 runs", st, err)
	}
}
