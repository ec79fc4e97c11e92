package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/fasthttp/websocket"

	"vexpo/internal/events"
	"vexpo/internal/models"
)

// Frame is the wire format of the event stream in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EventHandler receives every frame read from the event stream, after the
// store has been updated for the events the client folds in itself.
type EventHandler func(event string, data json.RawMessage)

// Subscription is a live connection to the server's event stream.
type Subscription struct {
	conn   *websocket.Conn
	client *Client
}

// Listen connects to the event stream using the held bearer token and reads
// frames until the context is cancelled, the connection drops, or Close is
// called. Notification events are folded into the client's Store; every
// frame is additionally passed to handler when it is non-nil.
func (c *Client) Listen(ctx context.Context, handler EventHandler) (*Subscription, error) {
	if c.token == "" {
		return nil, fmt.Errorf("listen: no auth token held")
	}

	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws?token=" + url.QueryEscape(c.token)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("listen: handshake rejected (%d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("listen: dial: %w", err)
	}

	sub := &Subscription{conn: conn, client: c}

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()
	go sub.readLoop(handler)

	return sub, nil
}

func (s *Subscription) readLoop(handler EventHandler) {
	for {
		var frame Frame
		if err := s.conn.ReadJSON(&frame); err != nil {
			_ = s.conn.Close()
			return
		}
		s.fold(frame)
		if handler != nil {
			handler(frame.Event, frame.Data)
		}
	}
}

// fold updates the local store for the events the SDK tracks itself.
func (s *Subscription) fold(frame Frame) {
	switch frame.Event {
	case events.NotificationCreated:
		var notification models.Notification
		if err := json.Unmarshal(frame.Data, &notification); err != nil {
			log.Printf("Error decoding notification event: %v", err)
			return
		}
		s.client.store.Apply(func(st State) State {
			return ApplyNotificationReceived(st, notification)
		})
	case events.UserProfileUpdated:
		var payload events.UserPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			log.Printf("Error decoding profile event: %v", err)
			return
		}
		s.client.store.Apply(func(st State) State {
			if st.Auth.CurrentUser != nil && st.Auth.CurrentUser.ID == payload.UserID {
				user := *st.Auth.CurrentUser
				user.Email = payload.Email
				user.Name = payload.Name
				st.Auth.CurrentUser = &user
			}
			return st
		})
	}
}

// RecordInteraction sends an exhibitor interaction over the stream. The
// server responds with an interaction/acknowledged frame.
func (s *Subscription) RecordInteraction(input models.CreateUserInteractionInput) error {
	return s.send(events.InteractionCreate, input)
}

// CreateNotification sends a notification create request over the stream.
// The server responds with a notification/acknowledged frame.
func (s *Subscription) CreateNotification(input models.CreateNotificationInput) error {
	return s.send(events.NotificationCreate, input)
}

func (s *Subscription) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.conn.WriteJSON(Frame{Event: event, Data: data})
}

// Close tears down the stream connection.
func (s *Subscription) Close() error {
	return s.conn.Close()
}
