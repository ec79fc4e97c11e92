package realtime_test

import (
	"errors"
	"sync"
	"testing"

	"vexpo/internal/realtime"

	"github.com/stretchr/testify/assert"
)

// recorderConn captures frames written by the hub.
type recorderConn struct {
	mu      sync.Mutex
	frames  []realtime.Frame
	failing bool
	closed  bool
}

func (c *recorderConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("connection reset")
	}
	c.frames = append(c.frames, v.(realtime.Frame))
	return nil
}

func (c *recorderConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *recorderConn) recorded() []realtime.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]realtime.Frame(nil), c.frames...)
}

func TestHub_Broadcast(t *testing.T) {
	hub := realtime.NewHub()
	alice := &recorderConn{}
	bob := &recorderConn{}
	hub.Register("user-alice", alice)
	hub.Register("user-bob", bob)

	hub.Broadcast("expo/updated", map[string]string{"expo_id": "expo-1"})

	for _, conn := range []*recorderConn{alice, bob} {
		frames := conn.recorded()
		assert.Len(t, frames, 1)
		assert.Equal(t, "expo/updated", frames[0].Event)
	}
}

func TestHub_ToUser(t *testing.T) {
	hub := realtime.NewHub()
	alice := &recorderConn{}
	aliceTablet := &recorderConn{}
	bob := &recorderConn{}
	hub.Register("user-alice", alice)
	hub.Register("user-alice", aliceTablet)
	hub.Register("user-bob", bob)

	hub.ToUser("user-alice", "notification/created", map[string]string{"notification_id": "n-1"})

	// Every session of the target user receives the event; nobody else does.
	assert.Len(t, alice.recorded(), 1)
	assert.Len(t, aliceTablet.recorded(), 1)
	assert.Empty(t, bob.recorded())
}

func TestHub_DropsSessionOnWriteError(t *testing.T) {
	hub := realtime.NewHub()
	healthy := &recorderConn{}
	broken := &recorderConn{failing: true}
	hub.Register("user-alice", healthy)
	hub.Register("user-bob", broken)

	hub.Broadcast("expo/updated", map[string]string{"expo_id": "expo-1"})

	// The broken connection is closed and removed; later events no longer
	// attempt delivery to it.
	assert.True(t, broken.closed)
	hub.Broadcast("expo/updated", map[string]string{"expo_id": "expo-2"})
	assert.Len(t, healthy.recorded(), 2)
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := realtime.NewHub()
	conn := &recorderConn{}
	session := hub.Register("user-alice", conn)

	hub.Broadcast("expo/updated", nil)
	hub.Unregister(session)
	hub.Broadcast("expo/updated", nil)

	assert.Len(t, conn.recorded(), 1)
}
