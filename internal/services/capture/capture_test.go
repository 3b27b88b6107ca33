package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestSliceSource_ReplaysThenEnds(t *testing.T) {
	frames := []gocv.Mat{
		gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 10, 10, 0), 4, 4, gocv.MatTypeCV8UC3),
		gocv.NewMatWithSizeFromScalar(gocv.NewScalar(20, 20, 20, 0), 4, 4, gocv.MatTypeCV8UC3),
	}
	defer func() {
		for _, f := range frames {
			f.Close()
		}
	}()

	src := NewSliceSource(frames)
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	for i, want := range []uint8{10, 20} {
		if err := src.Read(&dst); err != nil {
			t.Fatalf("Read %d failed: %v", i, err)
		}
		if got := dst.GetUCharAt(0, 0); got != want {
			t.Errorf("frame %d: expected pixel %d, got %d", i, want, got)
		}
	}

	if err := src.Read(&dst); !errors.Is(err, ErrFrameUnavailable) {
		t.Errorf("Expected ErrFrameUnavailable after the last frame, got %v", err)
	}
}

func TestOpenCamera_InvalidDevice(t *testing.T) {
	_, err := OpenCamera("not-a-camera-or-file")
	if !errors.Is(err, ErrDeviceOpen) {
		t.Errorf("Expected ErrDeviceOpen, got %v", err)
	}
}

// Numeric devices are camera indexes even when a file of that name exists,
// because OpenCamera consults ParseDevice before looking at the filesystem.
func TestParseDevice(t *testing.T) {
	tests := []struct {
		device  string
		index   int
		isIndex bool
	}{
		{"0", 0, true},
		{"2", 2, true},
		{"-1", 0, false},
		{"clip.mp4", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		index, isIndex := ParseDevice(tt.device)
		if index != tt.index || isIndex != tt.isIndex {
			t.Errorf("ParseDevice(%q) = (%d, %v), expected (%d, %v)", tt.device, index, isIndex, tt.index, tt.isIndex)
		}
	}
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		key      int
		expected bool
	}{
		{'q', true},
		{0x100 | 'q', true},
		{'Q', false},
		{27, false},
		{NoKey, false},
	}

	for _, tt := range tests {
		if got := IsQuitKey(tt.key); got != tt.expected {
			t.Errorf("IsQuitKey(%d) = %v, expected %v", tt.key, got, tt.expected)
		}
	}
}

func TestHeadlessDisplay(t *testing.T) {
	var d Display = HeadlessDisplay{}

	frame := gocv.NewMat()
	defer frame.Close()

	d.Show(frame)
	if key := d.WaitKey(1); key != NoKey {
		t.Errorf("Expected NoKey, got %d", key)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
