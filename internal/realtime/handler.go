package realtime

import (
	"encoding/json"
	"errors"
	"log"

	"vexpo/internal/events"
	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Handler owns the WebSocket endpoint: it registers authenticated
// connections with the hub and dispatches client-to-server events.
type Handler struct {
	hub                 *Hub
	exhibitorService    *services.ExhibitorService
	notificationService *services.NotificationService
	validate            *validator.Validate
}

// NewHandler creates a new WebSocket Handler.
func NewHandler(hub *Hub, exhibitorService *services.ExhibitorService, notificationService *services.NotificationService) *Handler {
	return &Handler{
		hub:                 hub,
		exhibitorService:    exhibitorService,
		notificationService: notificationService,
		validate:            validator.New(),
	}
}

// RegisterRoutes mounts the WebSocket endpoint. The handshake middleware
// authenticates the token before the upgrade.
func (h *Handler) RegisterRoutes(router fiber.Router, handshakeAuth fiber.Handler) {
	router.Get("/ws", handshakeAuth, websocket.New(h.serve))
}

// inboundFrame keeps the data raw until the event name is known.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// serve runs the read loop of one authenticated connection.
func (h *Handler) serve(conn *websocket.Conn) {
	user := middleware.ConnUser(conn)
	if user == nil {
		conn.Close()
		return
	}

	session := h.hub.Register(user.ID, conn)
	defer h.hub.Unregister(session)
	log.Printf("User %s connected", user.ID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Printf("User %s disconnected: %v", user.ID, err)
			return
		}

		switch frame.Event {
		case events.InteractionCreate:
			h.handleInteraction(session, user, frame.Data)
		case events.NotificationCreate:
			h.handleNotification(session, frame.Data)
		default:
			h.sendError(session, "Unknown event")
		}
	}
}

// handleInteraction records a user interaction, broadcasts it and
// acknowledges the requesting socket.
func (h *Handler) handleInteraction(session *Session, user *models.User, data json.RawMessage) {
	var input models.CreateUserInteractionInput
	if err := json.Unmarshal(data, &input); err != nil {
		h.sendError(session, "Failed to record interaction")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		h.sendError(session, "Failed to record interaction")
		return
	}

	interaction, err := h.exhibitorService.RecordInteraction(user.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			h.sendError(session, "Access denied")
			return
		}
		log.Printf("Exhibitor interaction error: %v", err)
		h.sendError(session, "Failed to record interaction")
		return
	}

	if err := session.Send(events.InteractionAcknowledged, events.InteractionAck{InteractionID: interaction.ID}); err != nil {
		log.Printf("Failed to acknowledge interaction %s: %v", interaction.ID, err)
	}
}

// handleNotification creates a notification, delivers it to the target
// user's channel and acknowledges the requesting socket.
func (h *Handler) handleNotification(session *Session, data json.RawMessage) {
	var input models.CreateNotificationInput
	if err := json.Unmarshal(data, &input); err != nil {
		h.sendError(session, "Failed to create notification")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		h.sendError(session, "Failed to create notification")
		return
	}

	notification, err := h.notificationService.Create(input)
	if err != nil {
		log.Printf("Notification creation error: %v", err)
		h.sendError(session, "Failed to create notification")
		return
	}

	if err := session.Send(events.NotificationAcknowledged, events.NotificationAck{NotificationID: notification.ID}); err != nil {
		log.Printf("Failed to acknowledge notification %s: %v", notification.ID, err)
	}
}

// sendError emits an error event to the requesting socket only.
func (h *Handler) sendError(session *Session, message string) {
	if err := session.Send(events.Error, events.ErrorPayload{Message: message}); err != nil {
		log.Printf("Failed to send error event: %v", err)
	}
}
