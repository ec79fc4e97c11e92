package handlers

import (
	"log"

	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ExpoHandler handles HTTP requests for expos, expo registrations and event
// schedules.
type ExpoHandler struct {
	expoService *services.ExpoService
	validate    *validator.Validate
}

// NewExpoHandler creates a new ExpoHandler.
func NewExpoHandler(expoService *services.ExpoService) *ExpoHandler {
	return &ExpoHandler{
		expoService: expoService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the expo routes that require no
// authentication: listings and detail reads.
func (h *ExpoHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/expos", h.HandleSearchExpos)
	router.Get("/expos/:expo_id", h.HandleGetExpo)
	router.Get("/event-schedules", h.HandleSearchSchedules)
}

// RegisterProtectedRoutes registers the expo routes gated by the bearer
// token middleware.
func (h *ExpoHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/expos", h.HandleCreateExpo)
	router.Patch("/expos/:expo_id", h.HandleUpdateExpo)
	router.Post("/expo-registrations", h.HandleCreateRegistration)
	router.Get("/expo-registrations", h.HandleSearchRegistrations)
	router.Post("/event-schedules", h.HandleCreateSchedule)
}

// HandleSearchExpos returns expos matching the shared search pattern.
func (h *ExpoHandler) HandleSearchExpos(c *fiber.Ctx) error {
	expos, err := h.expoService.Search(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching expos: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(expos)
}

// HandleGetExpo retrieves a single expo by ID.
func (h *ExpoHandler) HandleGetExpo(c *fiber.Ctx) error {
	expoID := c.Params("expo_id")
	expo, err := h.expoService.Get(expoID)
	if err != nil {
		log.Printf("Error getting expo %s: %v", expoID, err)
		return serviceErrorResponse(c, err, "Expo not found", "EXPO_NOT_FOUND")
	}
	return c.JSON(expo)
}

// HandleCreateExpo creates a new expo.
func (h *ExpoHandler) HandleCreateExpo(c *fiber.Ctx) error {
	var input models.CreateExpoInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing expo create body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	expo, err := h.expoService.Create(input)
	if err != nil {
		log.Printf("Error creating expo: %v", err)
		return serviceErrorResponse(c, err, "Expo not found", "EXPO_NOT_FOUND")
	}
	return c.Status(fiber.StatusCreated).JSON(expo)
}

// HandleUpdateExpo applies a partial update to an expo. The resource carries
// no ownership, so any authenticated caller may update it.
func (h *ExpoHandler) HandleUpdateExpo(c *fiber.Ctx) error {
	var input models.UpdateExpoInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing expo update body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	expo, err := h.expoService.Update(c.Params("expo_id"), input)
	if err != nil {
		log.Printf("Error updating expo %s: %v", c.Params("expo_id"), err)
		return serviceErrorResponse(c, err, "Expo not found", "EXPO_NOT_FOUND")
	}
	return c.JSON(expo)
}

// HandleCreateRegistration registers the authenticated user for an expo.
func (h *ExpoHandler) HandleCreateRegistration(c *fiber.Ctx) error {
	var input models.CreateExpoRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing registration body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	caller := middleware.CurrentUser(c)
	registration, err := h.expoService.RegisterUser(caller.ID, input)
	if err != nil {
		log.Printf("Error creating registration for user %s: %v", input.UserID, err)
		return serviceErrorResponse(c, err, "Expo not found", "EXPO_NOT_FOUND")
	}
	return c.Status(fiber.StatusCreated).JSON(registration)
}

// HandleSearchRegistrations returns registrations matching the shared
// search pattern.
func (h *ExpoHandler) HandleSearchRegistrations(c *fiber.Ctx) error {
	registrations, err := h.expoService.SearchRegistrations(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching registrations: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(registrations)
}

// HandleCreateSchedule adds a program item to an expo.
func (h *ExpoHandler) HandleCreateSchedule(c *fiber.Ctx) error {
	var input models.CreateEventScheduleInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing schedule create body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	schedule, err := h.expoService.CreateSchedule(input)
	if err != nil {
		log.Printf("Error creating schedule for expo %s: %v", input.ExpoID, err)
		return serviceErrorResponse(c, err, "Expo not found", "EXPO_NOT_FOUND")
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// HandleSearchSchedules returns schedule entries matching the shared search
// pattern.
func (h *ExpoHandler) HandleSearchSchedules(c *fiber.Ctx) error {
	schedules, err := h.expoService.SearchSchedules(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching schedules: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(schedules)
}
