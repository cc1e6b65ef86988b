// Package ws keeps the live websocket connection of each signed-in user and
// pushes swap notifications to it.
package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/ports"
)

const writeWait = 10 * time.Second

// conn serialises writes; gorilla connections allow one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Hub manages one websocket connection per user. A new connection for the
// same user replaces and closes the previous one.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn
	log   zerolog.Logger
}

// NewHub logs through log as given; callers attach the component field.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[string]*conn),
		log:   log,
	}
}

// Register records ws as the live connection of userID.
func (h *Hub) Register(userID string, ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.conns[userID]; ok {
		_ = existing.ws.Close()
	}
	h.conns[userID] = &conn{ws: ws}
	h.log.Info().Str("user_id", userID).Msg("websocket connection registered")
}

// Unregister removes ws if it is still the user's current connection.
func (h *Hub) Unregister(userID string, ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.conns[userID]; ok && current.ws == ws {
		delete(h.conns, userID)
		h.log.Info().Str("user_id", userID).Msg("websocket connection unregistered")
	}
	_ = ws.Close()
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Online returns the number of connected users.
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Notify implements ports.Notifier.
func (h *Hub) Notify(userID string, n ports.Notification) error {
	h.mu.RLock()
	c, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok {
		return ports.ErrRecipientOffline
	}

	if err := c.writeJSON(n); err != nil {
		h.Unregister(userID, c.ws)
		return fmt.Errorf("send to %s: %w", userID, err)
	}
	return nil
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.conns {
		_ = c.ws.Close()
		delete(h.conns, id)
	}
}
