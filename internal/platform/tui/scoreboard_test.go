package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/stairbeat/internal/storage"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{1500 * time.Millisecond, "0:02"},
		{65 * time.Second, "1:05"},
		{12*time.Minute + 3*time.Second, "12:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(openStore(t), 80, 24)
	view := m.View()
	if !strings.Contains(view, "No runs recorded yet") || !strings.Contains(view, "No runs yet") {
		t.Errorf("empty scoreboard view = %q", view)
	}
}

func TestScoreboardColumns(t *testing.T) {
	tests := []struct {
		width      int
		wantPlayer bool
	}{
		{80, true},
		{minWidthForPlayer, true},
		{minWidthForPlayer - 1, false},
	}
	for _, tt := range tests {
		m := NewScoreboardModel(nil, tt.width, 24)
		cols := m.columns()
		hasPlayer := false
		for _, c := range cols {
			if c.Title == "Player" {
				hasPlayer = true
			}
		}
		if hasPlayer != tt.wantPlayer {
			t.Errorf("width %d: player column = %v, expected %v", tt.width, hasPlayer, tt.wantPlayer)
		}
	}
}

func TestScoreboardRanksRuns(t *testing.T) {
	store := openStore(t)
	for _, r := range []storage.Run{
		{Player: "bob", Score: 150, Floor: 2, Steps: 20, BPM: 104, Duration: 30 * time.Second},
		{Score: 900, Floor: 6, Steps: 70, BPM: 114, Duration: 95 * time.Second},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 24)
	if len(m.runs) != 2 || m.runs[0].Score != 900 {
		t.Fatalf("runs = %+v, expected best first", m.runs)
	}

	view := m.View()
	for _, want := range []string{"#1", "local", "900", "1:35", "bob", "2 runs"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}
}
