package app

import (
	"context"
	"errors"
	"fmt"
	"maskcapture/internal/config"
	"maskcapture/internal/logger"
	"maskcapture/internal/routes"
	"maskcapture/internal/services"
	"maskcapture/internal/services/capture"
	"maskcapture/internal/services/storage"
	"maskcapture/internal/services/vision"
	"maskcapture/internal/services/websocket"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  *logger.Logger
	session string
}

func NewApp() (*App, error) {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  log,
		session: uuid.NewString(),
	}, nil
}

// Run opens the camera and drives the monitor until it stops.
// Every acquired resource is released before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Close()

	source, err := capture.OpenCamera(a.config.Camera)
	if err != nil {
		a.logger.Error("Error: Could not open webcam: %v", err)
		return err
	}
	defer source.Close()

	store := storage.NewSnapshotStore(a.config, a.logger)
	if err := store.EnsureDir(); err != nil {
		return err
	}

	var display capture.Display = capture.HeadlessDisplay{}
	if !a.config.Headless {
		display = capture.NewWindowDisplay(a.config.WindowTitle)
	}
	defer display.Close()

	opts := []services.Option{services.WithSession(a.session)}

	if a.config.StatusAddr != "" {
		hub := websocket.NewHubService(a.logger)
		stop, err := a.startStatusServer(ctx, store, hub)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, services.WithPublisher(hub))
	}

	fmt.Printf("🎥 Mask Capture\n")
	fmt.Printf("🆔 Session: %s\n", a.session)
	fmt.Printf("📷 Camera: %s\n", a.config.Camera)
	fmt.Printf("📁 Images: %s\n", a.config.OutputDirectory)
	if a.config.StatusAddr != "" {
		fmt.Printf("📍 Status: http://%s/api/status\n", a.config.StatusAddr)
	}

	monitor := services.NewMonitor(a.config, source, display, vision.NewDetectorService(a.config), store, a.logger, opts...)
	return monitor.Run(ctx)
}

// startStatusServer serves snapshots and status events in the background.
// The returned function stops the hub and the HTTP server.
func (a *App) startStatusServer(ctx context.Context, store *storage.SnapshotStore, hub *websocket.HubService) (func(), error) {
	hubCtx, cancel := context.WithCancel(ctx)
	go hub.Run(hubCtx)

	server := &http.Server{
		Addr:              a.config.StatusAddr,
		Handler:           routes.SetupRoutes(store, hub, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	// Błąd portu pojawia się od razu
	select {
	case err := <-errCh:
		cancel()
		return nil, fmt.Errorf("status server: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	a.logger.Info("Status server listening on %s", a.config.StatusAddr)

	return func() {
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server shutdown: %v", err)
		}
	}, nil
}
