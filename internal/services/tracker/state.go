// Package tracker holds the per-run detection state carried from frame to frame.
package tracker

import (
	"time"

	"maskcapture/internal/models"
)

// State is the loop-state record: rising-edge counter, current status and snapshot cadence.
// It is owned by a single loop and is not safe for concurrent use.
type State struct {
	Count        int
	Status       string
	PrevDetected bool
	LastCapture  time.Time
	Interval     time.Duration
}

// Observation is the outcome of feeding one frame's detection into the state.
type Observation struct {
	Detected bool
	Rising   bool
	Count    int
	Status   string
}

// NewState starts the snapshot cadence at start.
func NewState(start time.Time, interval time.Duration) *State {
	return &State{
		Status:      models.StatusNoMask,
		LastCapture: start,
		Interval:    interval,
	}
}

// Observe records whether the current frame contained a qualifying region.
// The counter only moves on a not-detected -> detected transition.
func (s *State) Observe(detected bool) Observation {
	rising := detected && !s.PrevDetected
	if rising {
		s.Count++
	}

	if detected {
		s.Status = models.StatusOK
	} else {
		s.Status = models.StatusNoMask
	}
	s.PrevDetected = detected

	return Observation{
		Detected: detected,
		Rising:   rising,
		Count:    s.Count,
		Status:   s.Status,
	}
}

// SnapshotDue reports whether at least Interval has passed since the last snapshot.
func (s *State) SnapshotDue(now time.Time) bool {
	return now.Sub(s.LastCapture) >= s.Interval
}

// MarkCaptured restarts the cadence from now.
func (s *State) MarkCaptured(now time.Time) {
	s.LastCapture = now
}
