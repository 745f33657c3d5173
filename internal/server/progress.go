package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/langsard/pose/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// ProgressHub broadcasts per-run analysis progress events to WebSocket
// clients.
type ProgressHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewProgressHub creates a new ProgressHub with no clients.
func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ProgressHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast sends one progress event to all connected clients. Events for
// a run with no listeners are dropped. The two view goroutines of a run
// emit concurrently and a websocket connection allows only one writer at a
// time, so writes hold the exclusive lock.
func (h *ProgressHub) Broadcast(ev app.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
