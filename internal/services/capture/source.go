// Package capture provides frame sources and display sinks for the detection loop.
package capture

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gocv.io/x/gocv"
)

var (
	// ErrDeviceOpen is returned when the camera or video file cannot be opened.
	ErrDeviceOpen = errors.New("could not open video source")
	// ErrFrameUnavailable signals that no further frame can be read.
	ErrFrameUnavailable = errors.New("failed to capture image")
)

// FrameSource produces frames one at a time.
type FrameSource interface {
	// Read fills dst with the next frame or returns ErrFrameUnavailable.
	Read(dst *gocv.Mat) error
	Close() error
}

// CameraSource reads frames from a camera device or a video file.
type CameraSource struct {
	device  string
	capture *gocv.VideoCapture
}

// OpenCamera opens device, which is either a numeric camera index or a path to a video file.
func OpenCamera(device string) (*CameraSource, error) {
	var (
		capture *gocv.VideoCapture
		err     error
	)

	// Liczba to zawsze indeks kamery, nawet gdy istnieje plik o tej nazwie
	if index, isIndex := ParseDevice(device); isIndex {
		capture, err = gocv.VideoCaptureDevice(index)
	} else if _, statErr := os.Stat(device); statErr == nil {
		capture, err = gocv.VideoCaptureFile(device)
	} else {
		return nil, fmt.Errorf("%w: %s is neither a camera index nor a file", ErrDeviceOpen, device)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDeviceOpen, device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w %s", ErrDeviceOpen, device)
	}

	return &CameraSource{device: device, capture: capture}, nil
}

// ParseDevice reports whether device is a camera index and returns it.
func ParseDevice(device string) (int, bool) {
	index, err := strconv.Atoi(device)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// Read implements FrameSource.
func (c *CameraSource) Read(dst *gocv.Mat) error {
	if ok := c.capture.Read(dst); !ok || dst.Empty() {
		return ErrFrameUnavailable
	}
	return nil
}

// Device returns the device string the source was opened with.
func (c *CameraSource) Device() string {
	return c.device
}

// Close releases the capture device.
func (c *CameraSource) Close() error {
	return c.capture.Close()
}

// SliceSource replays a fixed sequence of frames, then reports ErrFrameUnavailable.
// It does not own the frames.
type SliceSource struct {
	frames []gocv.Mat
	next   int
}

// NewSliceSource creates a source over frames.
func NewSliceSource(frames []gocv.Mat) *SliceSource {
	return &SliceSource{frames: frames}
}

// Read implements FrameSource.
func (s *SliceSource) Read(dst *gocv.Mat) error {
	if s.next >= len(s.frames) {
		return ErrFrameUnavailable
	}
	s.frames[s.next].CopyTo(dst)
	s.next++
	return nil
}

// Close implements FrameSource.
func (s *SliceSource) Close() error {
	return nil
}
