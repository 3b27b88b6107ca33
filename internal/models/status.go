package models

import "time"

// Detection status labels shown on the overlay.
const (
	StatusOK        = "OK"
	StatusNoMask    = "No Mask Detected"
	DetectedLabel   = "Mask Detected"
	TimestampLayout = "2006-01-02 15:04:05"
)

// StatusEvent is published to status subscribers after every processed frame.
type StatusEvent struct {
	Session   string    `json:"session"`
	Count     int       `json:"count"`
	Status    string    `json:"status"`
	Detected  bool      `json:"detected"`
	Rising    bool      `json:"rising"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  string    `json:"snapshot,omitempty"`
}
