package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient wraps one websocket connection. gorilla/websocket allows only a
// single concurrent writer per connection, so every write goes through the
// client's mutex: the hub broadcast and the keepalive ping never interleave.
type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Ping sends a keepalive control frame.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

// PantryHub fans pantry-change events out to a user's open websocket
// connections, so a second device sees batch updates as they land.
type PantryHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewPantryHub() *PantryHub {
	return &PantryHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *PantryHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *PantryHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// BroadcastPantryChange pushes the batch outcome to every connection the
// user has open. Write errors are ignored; the read loop notices the dead
// connection and unregisters it.
func (h *PantryHub) BroadcastPantryChange(userID uint, result BatchResult) {
	msg, _ := json.Marshal(map[string]any{
		"kind":   "pantry.updated",
		"result": result,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.write(websocket.TextMessage, msg)
	}
}
