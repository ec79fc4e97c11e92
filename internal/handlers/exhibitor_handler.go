package handlers

import (
	"log"

	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ExhibitorHandler handles HTTP requests for exhibitor profiles, virtual
// booths and user interactions.
type ExhibitorHandler struct {
	exhibitorService *services.ExhibitorService
	validate         *validator.Validate
}

// NewExhibitorHandler creates a new ExhibitorHandler.
func NewExhibitorHandler(exhibitorService *services.ExhibitorService) *ExhibitorHandler {
	return &ExhibitorHandler{
		exhibitorService: exhibitorService,
		validate:         validator.New(),
	}
}

// RegisterPublicRoutes registers the exhibitor routes that require no
// authentication: detail reads for exhibitors and booths.
func (h *ExhibitorHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/exhibitors/:exhibitor_id", h.HandleGetExhibitor)
	router.Get("/virtual-booths/:booth_id", h.HandleGetBooth)
}

// RegisterProtectedRoutes registers the exhibitor routes gated by the
// bearer token middleware.
func (h *ExhibitorHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/exhibitors", h.HandleCreateExhibitor)
	router.Get("/exhibitors", h.HandleSearchExhibitors)
	router.Patch("/exhibitors/:exhibitor_id", h.HandleUpdateExhibitor)
	router.Post("/virtual-booths", h.HandleCreateBooth)
	router.Patch("/virtual-booths/:booth_id", h.HandleUpdateBooth)
	router.Get("/user-interactions", h.HandleSearchInteractions)
}

// HandleCreateExhibitor creates the exhibitor profile for the caller.
func (h *ExhibitorHandler) HandleCreateExhibitor(c *fiber.Ctx) error {
	var input models.CreateExhibitorInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing exhibitor create body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	caller := middleware.CurrentUser(c)
	exhibitor, err := h.exhibitorService.CreateExhibitor(caller.ID, input)
	if err != nil {
		log.Printf("Error creating exhibitor for user %s: %v", input.UserID, err)
		return serviceErrorResponse(c, err, "Exhibitor not found", "EXHIBITOR_NOT_FOUND")
	}
	return c.Status(fiber.StatusCreated).JSON(exhibitor)
}

// HandleGetExhibitor retrieves an exhibitor profile by ID.
func (h *ExhibitorHandler) HandleGetExhibitor(c *fiber.Ctx) error {
	exhibitorID := c.Params("exhibitor_id")
	exhibitor, err := h.exhibitorService.GetExhibitor(exhibitorID)
	if err != nil {
		log.Printf("Error getting exhibitor %s: %v", exhibitorID, err)
		return serviceErrorResponse(c, err, "Exhibitor not found", "EXHIBITOR_NOT_FOUND")
	}
	return c.JSON(exhibitor)
}

// HandleUpdateExhibitor applies a partial update to an exhibitor profile.
// Only the owning user may update it.
func (h *ExhibitorHandler) HandleUpdateExhibitor(c *fiber.Ctx) error {
	var input models.UpdateExhibitorInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing exhibitor update body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	caller := middleware.CurrentUser(c)
	exhibitor, err := h.exhibitorService.UpdateExhibitor(caller.ID, c.Params("exhibitor_id"), input)
	if err != nil {
		log.Printf("Error updating exhibitor %s: %v", c.Params("exhibitor_id"), err)
		return serviceErrorResponse(c, err, "Exhibitor not found", "EXHIBITOR_NOT_FOUND")
	}
	return c.JSON(exhibitor)
}

// HandleSearchExhibitors returns exhibitors matching the shared search
// pattern.
func (h *ExhibitorHandler) HandleSearchExhibitors(c *fiber.Ctx) error {
	exhibitors, err := h.exhibitorService.SearchExhibitors(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching exhibitors: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(exhibitors)
}

// HandleCreateBooth creates the virtual booth for an exhibitor owned by the
// caller.
func (h *ExhibitorHandler) HandleCreateBooth(c *fiber.Ctx) error {
	var input models.CreateVirtualBoothInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing booth create body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	caller := middleware.CurrentUser(c)
	booth, err := h.exhibitorService.CreateBooth(caller.ID, input)
	if err != nil {
		log.Printf("Error creating booth for exhibitor %s: %v", input.ExhibitorID, err)
		return serviceErrorResponse(c, err, "Exhibitor not found", "EXHIBITOR_NOT_FOUND")
	}
	return c.Status(fiber.StatusCreated).JSON(booth)
}

// HandleGetBooth retrieves a virtual booth by ID.
func (h *ExhibitorHandler) HandleGetBooth(c *fiber.Ctx) error {
	boothID := c.Params("booth_id")
	booth, err := h.exhibitorService.GetBooth(boothID)
	if err != nil {
		log.Printf("Error getting booth %s: %v", boothID, err)
		return serviceErrorResponse(c, err, "Virtual booth not found", "BOOTH_NOT_FOUND")
	}
	return c.JSON(booth)
}

// HandleUpdateBooth applies a partial update to a booth. The caller must own
// the exhibitor that owns the booth.
func (h *ExhibitorHandler) HandleUpdateBooth(c *fiber.Ctx) error {
	var input models.UpdateVirtualBoothInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing booth update body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	caller := middleware.CurrentUser(c)
	booth, err := h.exhibitorService.UpdateBooth(caller.ID, c.Params("booth_id"), input)
	if err != nil {
		log.Printf("Error updating booth %s: %v", c.Params("booth_id"), err)
		return serviceErrorResponse(c, err, "Virtual booth not found", "BOOTH_NOT_FOUND")
	}
	return c.JSON(booth)
}

// HandleSearchInteractions returns interaction records matching the shared
// search pattern.
func (h *ExhibitorHandler) HandleSearchInteractions(c *fiber.Ctx) error {
	interactions, err := h.exhibitorService.SearchInteractions(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching interactions: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(interactions)
}
