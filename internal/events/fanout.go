package events

import (
	"encoding/json"
	"log"
	"strings"

	"vexpo/pkg/rabbitmq"
)

// Fanout is the production Emitter: it forwards every event to the WebSocket
// hub and mirrors the same payload to RabbitMQ for external consumers. The
// mirror is not transactional with the triggering write; a publish failure
// is logged and otherwise ignored.
type Fanout struct {
	hub      Emitter
	mqClient *rabbitmq.Client
}

// NewFanout creates a Fanout. The RabbitMQ client may be nil, in which case
// only the hub receives events.
func NewFanout(hub Emitter, mqClient *rabbitmq.Client) *Fanout {
	return &Fanout{hub: hub, mqClient: mqClient}
}

// Broadcast sends the event to every connected client and mirrors it to the
// broker.
func (f *Fanout) Broadcast(event string, payload interface{}) {
	f.hub.Broadcast(event, payload)
	f.publish(event, payload)
}

// ToUser sends the event to a single user's channel and mirrors it to the
// broker.
func (f *Fanout) ToUser(userID, event string, payload interface{}) {
	f.hub.ToUser(userID, event, payload)
	f.publish(event, payload)
}

// publish mirrors the payload to RabbitMQ with the event name as routing key
// (slashes become dots, e.g. expo/updated -> expo.updated).
func (f *Fanout) publish(event string, payload interface{}) {
	if f.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event payload: %v", event, err)
		return
	}
	routingKey := strings.ReplaceAll(event, "/", ".")
	if err := f.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event to RabbitMQ: %v", event, err)
	}
}
