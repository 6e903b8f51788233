package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Kind string `json:"kind"`
	Data any    `json:"data,omitempty"`
}

// wsConn serializes writes; gorilla permits one concurrent writer per socket.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// RealtimeHub tracks the live sockets of each signed-in user and fans
// profile-document changes and alerts out to all of them.
type RealtimeHub struct {
	mu    sync.RWMutex
	conns map[uint]map[*wsConn]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{conns: make(map[uint]map[*wsConn]struct{})}
}

// Attach registers a socket for the user and returns a detach func that
// unregisters and closes it. Detach is idempotent.
func (h *RealtimeHub) Attach(userID uint, conn *websocket.Conn) func() {
	c := &wsConn{conn: conn}
	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*wsConn]struct{})
	}
	h.conns[userID][c] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.drop(userID, c)
		})
	}
}

func (h *RealtimeHub) drop(userID uint, c *wsConn) {
	h.mu.Lock()
	if set := h.conns[userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Publish sends an event to every socket the user has open. Sockets that
// fail to write are dropped.
func (h *RealtimeHub) Publish(userID uint, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.L().Errorw("event marshal failed", "kind", ev.Kind, "err", err)
		return
	}

	h.mu.RLock()
	targets := make([]*wsConn, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(msg); err != nil {
			h.drop(userID, c)
		}
	}
}
