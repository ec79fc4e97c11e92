package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"vexpo/internal/models"
	"vexpo/internal/repositories"
	"vexpo/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// currentUserKey is the fiber.Ctx local under which the resolved user record
// is stored for downstream handlers.
const currentUserKey = "current_user"

// rejectResponse writes the standard error envelope for authentication
// failures, matching the shape the API handlers use.
func rejectResponse(c *fiber.Ctx, status int, message, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"message":    message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"error_code": code,
	})
}

// AuthRequired is a Fiber middleware that verifies the bearer token and
// resolves it to a stored user record on every protected request.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return rejectResponse(c, fiber.StatusUnauthorized, "Access token required", "AUTH_TOKEN_MISSING")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return rejectResponse(c, fiber.StatusForbidden, "Invalid or expired token", "AUTH_TOKEN_INVALID")
		}

		user, err := authService.Authenticate(parts[1])
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return rejectResponse(c, fiber.StatusUnauthorized, "Invalid token", "AUTH_USER_NOT_FOUND")
			}
			log.Printf("Token verification failed: %v", err)
			return rejectResponse(c, fiber.StatusForbidden, "Invalid or expired token", "AUTH_TOKEN_INVALID")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// WebSocketAuth verifies the handshake token before the connection is
// upgraded. Failures reject the connection attempt with the same codes as
// the HTTP path; no events are exchanged on a rejected handshake.
func WebSocketAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			return rejectResponse(c, fiber.StatusUnauthorized, "Authentication token required", "AUTH_TOKEN_MISSING")
		}

		user, err := authService.Authenticate(token)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return rejectResponse(c, fiber.StatusUnauthorized, "Invalid token", "AUTH_USER_NOT_FOUND")
			}
			log.Printf("WebSocket handshake verification failed: %v", err)
			return rejectResponse(c, fiber.StatusForbidden, "Invalid or expired token", "AUTH_TOKEN_INVALID")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user record attached by AuthRequired or
// WebSocketAuth, or nil if the request was not authenticated.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// ConnUser returns the user record attached to an upgraded WebSocket
// connection.
func ConnUser(conn *websocket.Conn) *models.User {
	user, _ := conn.Locals(currentUserKey).(*models.User)
	return user
}
