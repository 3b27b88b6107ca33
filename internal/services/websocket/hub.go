package websocket

import (
	"context"
	"encoding/json"
	"maskcapture/internal/logger"
	"maskcapture/internal/models"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// broadcastBuffer bounds how many status events may wait for the hub loop.
const broadcastBuffer = 32

const (
	// DefaultPongWait is how long a viewer may stay silent before its connection is dropped.
	DefaultPongWait   = 60 * time.Second
	// DefaultPingPeriod must stay below DefaultPongWait.
	DefaultPingPeriod = (DefaultPongWait * 9) / 10
	writeWait         = 10 * time.Second
)

// HubService fans status events out to connected websocket viewers.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	last       []byte
	mutex      sync.RWMutex
	logger     *logger.Logger

	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
		pongWait:   DefaultPongWait,
		pingPeriod: DefaultPingPeriod,
	}
}

// SetKeepalive changes the read deadline and ping interval. Call it before Run.
func (h *HubService) SetKeepalive(pongWait, pingPeriod time.Duration) {
	h.pongWait = pongWait
	h.pingPeriod = pingPeriod
}

// PongWait is the read deadline viewers get, extended on every pong.
func (h *HubService) PongWait() time.Duration {
	return h.pongWait
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes every client.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)

	// Pingi idą przez tę samą pętlę co broadcast, więc zapisy się nie ścigają
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			last := h.last
			h.mutex.Unlock()
			h.logger.Info("Client connected. Total: %d", total)

			if last != nil {
				h.send(client, last)
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Client disconnected. Total: %d", total)

		case message := <-h.broadcast:
			for _, client := range h.snapshotClients() {
				h.send(client, message)
			}

		case <-ticker.C:
			for _, client := range h.snapshotClients() {
				if err := client.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					h.logger.Warning("Ping failed, dropping viewer: %v", err)
					h.drop(client)
				}
			}
		}
	}
}

func (h *HubService) snapshotClients() []*websocket.Conn {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

func (h *HubService) drop(client *websocket.Conn) {
	h.mutex.Lock()
	delete(h.clients, client)
	h.mutex.Unlock()
	client.Close()
}

func (h *HubService) send(client *websocket.Conn, message []byte) {
	client.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
		h.logger.Error("Error sending message: %v", err)
		h.drop(client)
	}
}

func (h *HubService) Register(client *websocket.Conn) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish records event as the latest status and queues it for viewers.
// It never blocks: when the queue is full the event is only kept as the latest status.
func (h *HubService) Publish(event models.StatusEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Error encoding status event: %v", err)
		return
	}

	h.mutex.Lock()
	h.last = message
	h.mutex.Unlock()

	select {
	case h.broadcast <- message:
	default:
	}
}

// Last returns the most recently published event as JSON, or nil.
func (h *HubService) Last() []byte {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.last
}

func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
