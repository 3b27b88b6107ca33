package services

import (
	"context"
	"errors"
	"fmt"
	"maskcapture/internal/config"
	"maskcapture/internal/logger"
	"maskcapture/internal/models"
	"maskcapture/internal/services/capture"
	"maskcapture/internal/services/storage"
	"maskcapture/internal/services/tracker"
	"maskcapture/internal/services/vision"
	"time"

	"gocv.io/x/gocv"
)

// keyPollDelay is how long the display waits for a key press per frame, in milliseconds.
const keyPollDelay = 1

// StatusPublisher receives a copy of the status after every processed frame.
type StatusPublisher interface {
	Publish(event models.StatusEvent)
}

// Monitor runs the single-threaded capture → detect → count → snapshot → display loop.
type Monitor struct {
	source    capture.FrameSource
	display   capture.Display
	detector  *vision.DetectorService
	store     *storage.SnapshotStore
	publisher StatusPublisher
	logger    *logger.Logger

	now     func() time.Time
	session string
	state   *tracker.State
}

type Option func(*Monitor)

// WithClock replaces time.Now, mainly for simulated time in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithPublisher forwards status events to p.
func WithPublisher(p StatusPublisher) Option {
	return func(m *Monitor) { m.publisher = p }
}

// WithSession tags published events with a run identifier.
func WithSession(id string) Option {
	return func(m *Monitor) { m.session = id }
}

// NewMonitor wires the loop. The snapshot cadence starts when the monitor is created.
func NewMonitor(cfg *config.Config, source capture.FrameSource, display capture.Display, detector *vision.DetectorService, store *storage.SnapshotStore, logger *logger.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		source:   source,
		display:  display,
		detector: detector,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.state = tracker.NewState(m.now(), cfg.CaptureInterval)
	return m
}

// State returns a copy of the current loop state.
func (m *Monitor) State() tracker.State {
	return *m.state
}

// Step processes one frame in place: detection, counting, optional snapshot and overlay.
// A snapshot write failure is returned and must end the loop.
func (m *Monitor) Step(frame *gocv.Mat) (tracker.Observation, error) {
	result, err := m.detector.Detect(frame)
	if err != nil {
		return tracker.Observation{}, fmt.Errorf("detection failed: %w", err)
	}

	obs := m.state.Observe(result.Detected())
	if obs.Rising {
		m.logger.Info("Mask detected, count: %d", obs.Count)
	}

	now := m.now()
	if err := vision.DrawHUD(frame, obs.Count, obs.Status, now); err != nil {
		return obs, err
	}

	event := models.StatusEvent{
		Session:   m.session,
		Count:     obs.Count,
		Status:    obs.Status,
		Detected:  obs.Detected,
		Rising:    obs.Rising,
		Timestamp: now,
	}

	// Zdjęcie zawiera tekst, ale jeszcze bez ramki ROI
	if m.state.SnapshotDue(now) {
		snap, err := m.store.Save(*frame, now)
		if err != nil {
			return obs, err
		}
		m.state.MarkCaptured(now)
		event.Snapshot = snap.Name
	}

	if err := vision.DrawROI(frame, result.ROI, obs.Detected); err != nil {
		return obs, err
	}

	if m.publisher != nil {
		m.publisher.Publish(event)
	}
	return obs, nil
}

// Run loops until the source runs dry, the quit key is pressed, ctx is cancelled
// or a snapshot cannot be written. Only the last case returns an error.
func (m *Monitor) Run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()

	m.logger.Info("🎬 Monitor started - snapshot every %v into %s", m.state.Interval, m.store.Dir())

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("🛑 Monitor cancelled")
			return nil
		default:
		}

		if err := m.source.Read(&frame); err != nil {
			if errors.Is(err, capture.ErrFrameUnavailable) {
				m.logger.Error("Error: %v", err)
				return nil
			}
			return err
		}

		if _, err := m.Step(&frame); err != nil {
			return err
		}

		m.display.Show(frame)
		if capture.IsQuitKey(m.display.WaitKey(keyPollDelay)) {
			m.logger.Info("🛑 Quit key pressed, total count: %d", m.state.Count)
			return nil
		}
	}
}
