package models

import "time"

// Snapshot describes an annotated frame written to the output directory.
type Snapshot struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	CapturedAt time.Time `json:"captured_at"`
	Size       int64     `json:"size"`
}
