package vision

import (
	"image"
	"image/color"
	"testing"
	"time"

	"maskcapture/internal/config"

	"gocv.io/x/gocv"
)

var green = color.RGBA{R: 0, G: 255, B: 0, A: 0}

func newTestDetector() *DetectorService {
	return NewDetectorService(&config.Config{
		BoxSize:       200,
		AreaThreshold: 500,
		LowerColor:    config.DefaultLowerColor,
		UpperColor:    config.DefaultUpperColor,
	})
}

// blankFrame returns a black BGR frame.
func blankFrame(t *testing.T, width, height int) gocv.Mat {
	t.Helper()
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
}

func paint(t *testing.T, frame *gocv.Mat, r image.Rectangle, c color.RGBA) {
	t.Helper()
	if err := gocv.Rectangle(frame, r, c, -1); err != nil {
		t.Fatalf("Failed to paint rectangle: %v", err)
	}
}

func TestCenterROI(t *testing.T) {
	tests := []struct {
		width, height, size int
		expected            image.Rectangle
	}{
		{640, 480, 200, image.Rect(220, 140, 420, 340)},
		{1280, 720, 200, image.Rect(540, 260, 740, 460)},
		{100, 100, 200, image.Rect(0, 0, 100, 100)},
		{640, 120, 200, image.Rect(220, 0, 420, 120)},
	}

	for _, tt := range tests {
		got := CenterROI(tt.width, tt.height, tt.size)
		if got != tt.expected {
			t.Errorf("CenterROI(%d, %d, %d) = %v, expected %v", tt.width, tt.height, tt.size, got, tt.expected)
		}
	}
}

func TestQualifies_StrictThreshold(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		area     float64
		expected bool
	}{
		{0, false},
		{499.9, false},
		{500, false},
		{500.5, true},
		{3481, true},
	}

	for _, tt := range tests {
		if got := d.Qualifies(tt.area); got != tt.expected {
			t.Errorf("Qualifies(%v) = %v, expected %v", tt.area, got, tt.expected)
		}
	}
}

func TestDetect_BlankFrame(t *testing.T) {
	frame := blankFrame(t, 640, 480)
	defer frame.Close()

	result, err := newTestDetector().Detect(&frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Detected() {
		t.Errorf("Expected no detection, got %+v", result.Regions)
	}
	if result.ROI != image.Rect(220, 140, 420, 340) {
		t.Errorf("Unexpected ROI: %v", result.ROI)
	}
}

func TestDetect_GreenSquareInROI(t *testing.T) {
	frame := blankFrame(t, 640, 480)
	defer frame.Close()
	paint(t, &frame, image.Rect(290, 210, 350, 270), green)

	result, err := newTestDetector().Detect(&frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if !result.Detected() {
		t.Fatal("Expected a detection")
	}
	if len(result.Regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(result.Regions))
	}

	region := result.Regions[0]
	if region.X != 290 || region.Y != 210 {
		t.Errorf("Expected region at (290,210) in frame coordinates, got (%d,%d)", region.X, region.Y)
	}
	if region.Area <= 500 {
		t.Errorf("Expected area above threshold, got %v", region.Area)
	}
}

func TestDetect_SmallRegionIgnored(t *testing.T) {
	frame := blankFrame(t, 640, 480)
	defer frame.Close()
	paint(t, &frame, image.Rect(300, 220, 310, 230), green)

	result, err := newTestDetector().Detect(&frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Detected() {
		t.Errorf("Region below the area threshold should not be detected: %+v", result.Regions)
	}
}

func TestDetect_RegionOutsideROIIgnored(t *testing.T) {
	frame := blankFrame(t, 640, 480)
	defer frame.Close()
	paint(t, &frame, image.Rect(10, 10, 110, 110), green)

	result, err := newTestDetector().Detect(&frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Detected() {
		t.Error("Region outside the ROI should not be detected")
	}
}

func TestDetect_WrongColorIgnored(t *testing.T) {
	frame := blankFrame(t, 640, 480)
	defer frame.Close()
	paint(t, &frame, image.Rect(280, 200, 360, 280), color.RGBA{R: 255, G: 0, B: 0, A: 0})

	result, err := newTestDetector().Detect(&frame)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Detected() {
		t.Error("Red region should not match the green range")
	}
}

func TestDetect_EmptyFrame(t *testing.T) {
	frame := gocv.NewMat()
	defer frame.Close()

	if _, err := newTestDetector().Detect(&frame); err != ErrEmptyFrame {
		t.Errorf("Expected ErrEmptyFrame, got %v", err)
	}
}

func TestDrawHUDAndROI(t *testing.T) {
	frame := blankFrame(t, 640, 480)
	defer frame.Close()

	if err := DrawHUD(&frame, 3, "OK", time.Date(2024, 11, 13, 9, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("DrawHUD failed: %v", err)
	}
	if err := DrawROI(&frame, image.Rect(220, 140, 420, 340), false); err != nil {
		t.Fatalf("DrawROI failed: %v", err)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray); err != nil {
		t.Fatalf("CvtColor failed: %v", err)
	}
	if gocv.CountNonZero(gray) == 0 {
		t.Error("Expected overlay pixels on the frame")
	}
}
