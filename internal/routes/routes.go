package routes

import (
	"maskcapture/internal/handlers"
	"maskcapture/internal/logger"
	"maskcapture/internal/services/storage"
	"maskcapture/internal/services/websocket"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRoutes registers the snapshot gallery, status and log endpoints.
func SetupRoutes(store *storage.SnapshotStore, hub *websocket.HubService, logger *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Snapshoty
	r.Get("/api/get-images", handlers.GetImagesHandler(store, logger))
	r.Get(handlers.SnapshotURLPrefix+"{name}", handlers.ViewSnapshotHandler(store))

	// Status detekcji
	r.Get("/api/status", handlers.StatusHandler(hub))
	r.Get("/api/status/ws", handlers.StatusWebsocketHandler(hub, logger))

	// Logi
	r.Get("/logs/{level}", handlers.ShowLogsHandler(logger))
	r.Post("/logs/{level}/clear", handlers.ClearLogsHandler(logger))

	return r
}
