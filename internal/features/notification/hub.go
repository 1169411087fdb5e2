package notification

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// PermitEvent is the payload broadcast to websocket subscribers
type PermitEvent struct {
	PermitID string `json:"permit_id"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

// Hub fans permit events out to connected websocket clients
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
}

func (h *Hub) Unregister(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Broadcast sends the event to every client. Write failures evict the
// connection; delivery is best-effort.
func (h *Hub) Broadcast(event PermitEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.Close()
			delete(h.conns, c)
		}
	}
}
