package storage

import (
	"errors"
	"fmt"
	"maskcapture/internal/config"
	"maskcapture/internal/logger"
	"maskcapture/internal/models"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"gocv.io/x/gocv"
)

var ErrEncode = errors.New("failed to encode snapshot")

var (
	imageExtPattern    = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif)$`)
	captureNamePattern = regexp.MustCompile(`^capture_(\d+)\.jpg$`)
)

// SnapshotStore writes annotated frames as JPEG files into a single directory.
type SnapshotStore struct {
	imagesDir string
	logger    *logger.Logger
}

// NewSnapshotStore creates a store for the configured output directory.
func NewSnapshotStore(config *config.Config, logger *logger.Logger) *SnapshotStore {
	return &SnapshotStore{
		imagesDir: config.OutputDirectory,
		logger:    logger,
	}
}

// Dir returns the output directory.
func (s *SnapshotStore) Dir() string {
	return s.imagesDir
}

// EnsureDir creates the output directory if it does not exist yet.
func (s *SnapshotStore) EnsureDir() error {
	if err := os.MkdirAll(s.imagesDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.imagesDir, err)
	}
	return nil
}

// FileName returns the snapshot file name for a capture time.
func FileName(at time.Time) string {
	return fmt.Sprintf("capture_%d.jpg", at.Unix())
}

// Save JPEG-encodes frame and writes it under the name derived from at.
func (s *SnapshotStore) Save(frame gocv.Mat, at time.Time) (models.Snapshot, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer buf.Close()

	return s.Write(buf.GetBytes(), at)
}

// Write stores already encoded image data under the name derived from at.
func (s *SnapshotStore) Write(data []byte, at time.Time) (models.Snapshot, error) {
	filename := FileName(at)
	fullpath := filepath.Join(s.imagesDir, filename)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to save image %s: %w", filename, err)
	}

	s.logger.Info("Captured image: %s", fullpath)

	return models.Snapshot{
		Name:       filename,
		Path:       fullpath,
		CapturedAt: time.Unix(at.Unix(), 0),
		Size:       int64(len(data)),
	}, nil
}

// List returns the image files in the output directory, newest name first.
func (s *SnapshotStore) List() ([]models.Snapshot, error) {
	entries, err := os.ReadDir(s.imagesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.imagesDir, err)
	}

	snapshots := make([]models.Snapshot, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExtPattern.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		capturedAt := info.ModTime()
		if m := captureNamePattern.FindStringSubmatch(entry.Name()); m != nil {
			if sec, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				capturedAt = time.Unix(sec, 0)
			}
		}

		snapshots = append(snapshots, models.Snapshot{
			Name:       entry.Name(),
			Path:       filepath.Join(s.imagesDir, entry.Name()),
			CapturedAt: capturedAt,
			Size:       info.Size(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})
	return snapshots, nil
}
