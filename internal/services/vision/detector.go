package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"maskcapture/internal/config"
	"maskcapture/internal/models"

	"gocv.io/x/gocv"
)

const (
	DefaultBoxSize       = 200 // Bok kwadratu ROI
	DefaultAreaThreshold = 500 // Minimalne pole konturu (szum poniżej)
)

var ErrEmptyFrame = errors.New("frame is empty")

var (
	colorDetected = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	colorIdle     = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	colorText     = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// DetectionResult is one qualifying color region, in full-frame coordinates.
type DetectionResult struct {
	X      int
	Y      int
	Width  int
	Height int
	Area   float64
}

// Result is the outcome of examining one frame.
type Result struct {
	ROI     image.Rectangle
	Regions []DetectionResult
}

// Detected reports whether any qualifying region was found.
func (r Result) Detected() bool {
	return len(r.Regions) > 0
}

// DetectorService looks for the configured HSV color range inside a fixed central square.
type DetectorService struct {
	lower         gocv.Scalar
	upper         gocv.Scalar
	areaThreshold float64
	boxSize       int
}

// NewDetectorService builds a detector from the color range, box size and area threshold in config.
func NewDetectorService(cfg *config.Config) *DetectorService {
	boxSize := cfg.BoxSize
	if boxSize <= 0 {
		boxSize = DefaultBoxSize
	}
	threshold := cfg.AreaThreshold
	if threshold <= 0 {
		threshold = DefaultAreaThreshold
	}

	return &DetectorService{
		lower:         gocv.NewScalar(cfg.LowerColor[0], cfg.LowerColor[1], cfg.LowerColor[2], 0),
		upper:         gocv.NewScalar(cfg.UpperColor[0], cfg.UpperColor[1], cfg.UpperColor[2], 0),
		areaThreshold: threshold,
		boxSize:       boxSize,
	}
}

// Qualifies reports whether a contour area is large enough to count as a detection.
func (s *DetectorService) Qualifies(area float64) bool {
	return area > s.areaThreshold
}

// CenterROI returns the size x size square centred on a width x height frame,
// clipped to the frame bounds.
func CenterROI(width, height, size int) image.Rectangle {
	cx, cy := width/2, height/2
	half := size / 2
	roi := image.Rect(cx-half, cy-half, cx+half, cy+half)
	return roi.Intersect(image.Rect(0, 0, width, height))
}

// Detect thresholds the ROI of frame and returns the qualifying regions.
// Each region is outlined and labelled in place on frame.
func (s *DetectorService) Detect(frame *gocv.Mat) (Result, error) {
	if frame.Empty() {
		return Result{}, ErrEmptyFrame
	}

	roiRect := CenterROI(frame.Cols(), frame.Rows(), s.boxSize)
	result := Result{ROI: roiRect}
	if roiRect.Empty() {
		return result, nil
	}

	// Region dzieli pamięć z klatką, więc rysowanie trafia do pełnego obrazu
	roi := frame.Region(roiRect)
	defer roi.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	if err := gocv.CvtColor(roi, &hsv, gocv.ColorBGRToHSV); err != nil {
		return result, fmt.Errorf("failed to convert roi to hsv: %w", err)
	}

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, s.lower, s.upper, &mask)

	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if !s.Qualifies(area) {
			continue
		}

		rect := gocv.BoundingRect(contour)
		if err := gocv.Rectangle(&roi, rect, colorDetected, 2); err != nil {
			return result, fmt.Errorf("failed to draw rectangle: %w", err)
		}
		if err := gocv.PutText(&roi, models.DetectedLabel, image.Pt(rect.Min.X, rect.Min.Y-10), gocv.FontHersheySimplex, 0.45, colorDetected, 2); err != nil {
			return result, fmt.Errorf("failed to draw text: %w", err)
		}

		result.Regions = append(result.Regions, DetectionResult{
			X:      roiRect.Min.X + rect.Min.X,
			Y:      roiRect.Min.Y + rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Area:   area,
		})
	}

	return result, nil
}
