package vision

import (
	"fmt"
	"image"
	"maskcapture/internal/models"
	"time"

	"gocv.io/x/gocv"
)

// DrawHUD writes the running count, status and timestamp onto frame.
func DrawHUD(frame *gocv.Mat, count int, status string, at time.Time) error {
	lines := []struct {
		text  string
		pt    image.Point
		scale float64
	}{
		{fmt.Sprintf("Mask Count: %d", count), image.Pt(10, 30), 1},
		{fmt.Sprintf("Status: %s", status), image.Pt(10, 90), 1},
		{at.Format(models.TimestampLayout), image.Pt(10, frame.Rows()-10), 0.7},
	}

	for _, line := range lines {
		if err := gocv.PutText(frame, line.text, line.pt, gocv.FontHersheySimplex, line.scale, colorText, 2); err != nil {
			return fmt.Errorf("failed to draw text: %w", err)
		}
	}
	return nil
}

// DrawROI outlines the region of interest, green when detected and blue otherwise.
func DrawROI(frame *gocv.Mat, roi image.Rectangle, detected bool) error {
	c := colorIdle
	if detected {
		c = colorDetected
	}
	if err := gocv.Rectangle(frame, roi, c, 2); err != nil {
		return fmt.Errorf("failed to draw rectangle: %w", err)
	}
	return nil
}
