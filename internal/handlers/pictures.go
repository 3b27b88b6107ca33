package handlers

import (
	"encoding/json"
	"maskcapture/internal/logger"
	"maskcapture/internal/services/storage"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SnapshotURLPrefix is the path under which saved snapshots are served.
const SnapshotURLPrefix = "/captured_images/"

// GetImagesHandler lists saved snapshots as URLs, newest name first.
func GetImagesHandler(store *storage.SnapshotStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := store.List()
		if err != nil {
			logger.Error("Error reading images: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load images"}, logger)
			return
		}

		paths := make([]string, 0, len(snapshots))
		for _, snap := range snapshots {
			paths = append(paths, SnapshotURLPrefix+snap.Name)
		}
		writeJSON(w, http.StatusOK, paths, logger)
	}
}

// ViewSnapshotHandler serves a single snapshot file by name.
func ViewSnapshotHandler(store *storage.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, filepath.Join(store.Dir(), name))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}
