package handlers

import (
	"log"

	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterProtectedRoutes registers the user routes; all of them require
// authentication.
func (h *UserHandler) RegisterProtectedRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetMe)
	userRoutes.Get("/", h.HandleSearchUsers)
	userRoutes.Get("/:user_id", h.HandleGetUser)
	userRoutes.Patch("/:user_id", h.HandleUpdateUser)
}

// HandleGetMe returns the profile of the authenticated caller.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleGetUser retrieves a user profile by ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	user, err := h.userService.GetByID(userID)
	if err != nil {
		log.Printf("Error getting user %s: %v", userID, err)
		return serviceErrorResponse(c, err, "User not found", "USER_NOT_FOUND")
	}
	return c.JSON(user)
}

// HandleUpdateUser applies a partial profile update. Only the profile owner
// may update it.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var input models.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing user update body: %v", err)
		return bodyParseErrorResponse(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	caller := middleware.CurrentUser(c)
	user, err := h.userService.Update(caller.ID, c.Params("user_id"), input)
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("user_id"), err)
		return serviceErrorResponse(c, err, "User not found", "USER_NOT_FOUND")
	}
	return c.JSON(user)
}

// HandleSearchUsers returns users matching the shared search pattern.
func (h *UserHandler) HandleSearchUsers(c *fiber.Ctx) error {
	users, err := h.userService.Search(searchParamsFromQuery(c))
	if err != nil {
		log.Printf("Error searching users: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
	return c.JSON(users)
}
