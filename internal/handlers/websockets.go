package handlers

import (
	"maskcapture/internal/logger"
	"maskcapture/internal/services/websocket"
	"net/http"
	"time"

	gorilla "github.com/gorilla/websocket"
)

var Upgrader = gorilla.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatusHandler returns the most recent status event, or 204 before the first frame.
func StatusHandler(hub *websocket.HubService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := hub.Last()
		if last == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(last)
	}
}

// StatusWebsocketHandler streams status events to a viewer until it disconnects.
func StatusWebsocketHandler(hub *websocket.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		// Hub wysyła pingi co PingPeriod, pong przedłuża termin odczytu
		pongWait := hub.PongWait()
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		hub.Register(connection)
		defer hub.Unregister(connection)

		logger.Info("Viewer connected")

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				logger.Info("Viewer disconnected: %v", err)
				break
			}
		}
	}
}
