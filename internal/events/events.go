package events

// Server-to-client event names. Slash-separated names are what clients
// subscribe to; the RabbitMQ mirror replaces slashes with dots.
const (
	UserRegistered       = "user/registered"
	UserProfileUpdated   = "user/profileUpdated"
	ExpoUpdated          = "expo/updated"
	RegistrationCreated  = "expo/registrationCreated"
	NotificationCreated  = "notification/created"
	ExhibitorInteraction = "exhibitor/interaction"
)

// Client-to-server event names and their acknowledgments.
const (
	InteractionCreate        = "exhibitor/interaction"
	InteractionAcknowledged  = "interaction/acknowledged"
	NotificationCreate       = "notification/create"
	NotificationAcknowledged = "notification/acknowledged"
	Error                    = "error"
)

// UserPayload is the broadcast body of user/registered and
// user/profileUpdated. It carries only the public identity fields.
type UserPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// InteractionAck is the body of interaction/acknowledged.
type InteractionAck struct {
	InteractionID string `json:"interaction_id"`
}

// NotificationAck is the body of notification/acknowledged.
type NotificationAck struct {
	NotificationID string `json:"notification_id"`
}

// ErrorPayload is the body of the error event sent back to a single socket.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Emitter mirrors write outcomes to connected real-time clients. Delivery is
// fire-and-forget: implementations return nothing, track no acknowledgments
// and never retry. A client that is offline at emission time misses the
// event permanently.
type Emitter interface {
	// Broadcast sends the event to every connected client.
	Broadcast(event string, payload interface{})
	// ToUser sends the event only to the channel of the given user.
	ToUser(userID, event string, payload interface{})
}
