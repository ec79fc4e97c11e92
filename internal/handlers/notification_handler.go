package handlers

import (
	"log"

	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for notifications, admin
// activity logs and feedback.
type NotificationHandler struct {
	notificationService *services.NotificationService
	validate            *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validate:            validator.New(),
	}
}

// RegisterProtectedRoutes registers the notification, admin log and
// feedback routes; all of them require authentication.
func (h *NotificationHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/notifications/:user_id", h.HandleListNotifications)
	router.Post("/admin-logs", h.HandleCreateAdminLog)
	router.Get("/admin-logs", h.HandleSearchAdminLogs)
	router.Post("/feedback", h.HandleCreateFeedback)
	router.Get("/feedback", h.HandleSearchFeedback)
}

// HandleListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) HandleListNotifications(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	notifications, err := h.notificationService.ListForUser(caller.ID, c.Params("user_id"))
	if err != nil {
		log.Printf("Error listing notifications for user %s: %v", c.Params("user_id"), err)
		return serviceErrorResponse(c, err, "User not found", "USER_NOT_FOUND")
	}
	return c.JSON(notifications)
}

// HandleCreateAdminLog appends an admin activity record.
func (h *NotificationHandler) HandleCreateAdminLog(c *fiber.Ctx) error {
	var input models.CreateAdminActivityLogInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing admin log body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	entry, err := h.notificationService.CreateAdminLog(input)
	if err != nil {
		log.Printf("Error creating admin log: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleSearchAdminLogs returns admin activity records matching the shared
// search pattern.
func (h *NotificationHandler) HandleSearchAdminLogs(c *fiber.Ctx) error {
	entries, err := h.notificationService.SearchAdminLogs(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching admin logs: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(entries)
}

// HandleCreateFeedback appends a feedback record for the caller.
func (h *NotificationHandler) HandleCreateFeedback(c *fiber.Ctx) error {
	var input models.CreateFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing feedback body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	feedback, err := h.notificationService.CreateFeedback(input)
	if err != nil {
		log.Printf("Error creating feedback: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// HandleSearchFeedback returns feedback records matching the shared search
// pattern.
func (h *NotificationHandler) HandleSearchFeedback(c *fiber.Ctx) error {
	feedbacks, err := h.notificationService.SearchFeedback(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching feedback: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(feedbacks)
}
