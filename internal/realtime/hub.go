package realtime

import (
	"log"
	"sync"
)

// Conn is the subset of a WebSocket connection the hub writes to.
// *websocket.Conn satisfies it; tests substitute a recorder.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Frame is the JSON envelope of every message in either direction:
// {"event": "...", "data": {...}}.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Session is one authenticated WebSocket connection. The mutex serializes
// writes to the underlying connection.
type Session struct {
	userID string
	conn   Conn
	mu     sync.Mutex
}

// Send writes one event frame to the session's connection.
func (s *Session) Send(event string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(Frame{Event: event, Data: payload})
}

// Hub tracks connected sessions and implements events.Emitter over them.
// Delivery is fire-and-forget: a write error drops the connection and the
// event is gone. Channel membership is just the user_id recorded at
// registration; unregistering on disconnect is the only cleanup.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[*Session]struct{})}
}

// Register adds an authenticated connection and returns its session.
func (h *Hub) Register(userID string, conn Conn) *Session {
	s := &Session{userID: userID, conn: conn}
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unregister removes a session from the hub.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

// Broadcast sends the event to every connected client.
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.deliver(event, payload, func(*Session) bool { return true })
}

// ToUser sends the event only to the sessions of the given user.
func (h *Hub) ToUser(userID, event string, payload interface{}) {
	h.deliver(event, payload, func(s *Session) bool { return s.userID == userID })
}

// deliver writes the frame to every session the filter accepts, dropping
// sessions whose connection can no longer be written to.
func (h *Hub) deliver(event string, payload interface{}, match func(*Session) bool) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		if match(s) {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.Send(event, payload); err != nil {
			log.Printf("Dropping session for user %s after write error: %v", s.userID, err)
			h.Unregister(s)
			s.conn.Close()
		}
	}
}
