package tracker

import (
	"testing"
	"time"

	"maskcapture/internal/models"
)

func feed(s *State, frames []bool) []Observation {
	out := make([]Observation, 0, len(frames))
	for _, detected := range frames {
		out = append(out, s.Observe(detected))
	}
	return out
}

func TestObserve_NoDetectionNeverCounts(t *testing.T) {
	s := NewState(time.Unix(0, 0), 15*time.Second)

	for i, obs := range feed(s, make([]bool, 50)) {
		if obs.Count != 0 {
			t.Fatalf("frame %d: expected count 0, got %d", i, obs.Count)
		}
		if obs.Status != models.StatusNoMask {
			t.Fatalf("frame %d: expected status %q, got %q", i, models.StatusNoMask, obs.Status)
		}
		if obs.Rising {
			t.Fatalf("frame %d: unexpected rising edge", i)
		}
	}
}

func TestObserve_EdgeTriggered(t *testing.T) {
	tests := []struct {
		name     string
		frames   []bool
		expected int
	}{
		{"empty", nil, 0},
		{"single run", []bool{false, true, true, true, true, false, false}, 1},
		{"run starting on first frame", []bool{true, true, true}, 1},
		{"two runs", []bool{true, true, false, true, true}, 2},
		{"two runs with long gap", []bool{false, true, false, false, false, true, false}, 2},
		{"flicker", []bool{true, false, true, false, true, false}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(time.Unix(0, 0), 15*time.Second)
			feed(s, tt.frames)
			if s.Count != tt.expected {
				t.Errorf("expected count %d, got %d", tt.expected, s.Count)
			}
		})
	}
}

func TestObserve_StatusFollowsCurrentFrame(t *testing.T) {
	s := NewState(time.Unix(0, 0), 15*time.Second)

	obs := feed(s, []bool{true, true, false})

	if !obs[0].Rising || obs[1].Rising || obs[2].Rising {
		t.Errorf("unexpected rising flags: %+v", obs)
	}
	if obs[0].Status != models.StatusOK || obs[1].Status != models.StatusOK {
		t.Errorf("expected OK while detected, got %q and %q", obs[0].Status, obs[1].Status)
	}
	if obs[2].Status != models.StatusNoMask {
		t.Errorf("expected %q after detection ends, got %q", models.StatusNoMask, obs[2].Status)
	}
	if s.PrevDetected {
		t.Error("PrevDetected should follow the last frame")
	}
}

func TestSnapshotCadence(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	s := NewState(start, 15*time.Second)

	var captured []time.Time
	for sec := 0; sec <= 31; sec++ {
		now := start.Add(time.Duration(sec) * time.Second)
		if s.SnapshotDue(now) {
			captured = append(captured, now)
			s.MarkCaptured(now)
		}
	}

	if len(captured) != 2 {
		t.Fatalf("expected 2 snapshots over 31s, got %d (%v)", len(captured), captured)
	}
	if !captured[0].Equal(start.Add(15*time.Second)) || !captured[1].Equal(start.Add(30*time.Second)) {
		t.Errorf("unexpected capture times: %v", captured)
	}
}

func TestSnapshotDue_Boundary(t *testing.T) {
	start := time.Unix(100, 0)
	s := NewState(start, 15*time.Second)

	if s.SnapshotDue(start.Add(14999 * time.Millisecond)) {
		t.Error("snapshot should not be due before the interval")
	}
	if !s.SnapshotDue(start.Add(15 * time.Second)) {
		t.Error("snapshot should be due exactly at the interval")
	}
}
