package handlers

import (
	"errors"
	"log"

	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/recover-password", h.HandleRecoverPassword)
}

// HandleRegister handles new user registration and issues a token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input models.RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return bodyParseErrorResponse(c)
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	_, token, err := h.authService.Register(input)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return ErrorResponse(c, fiber.StatusBadRequest, "User with this email already exists", "USER_ALREADY_EXISTS")
		}
		log.Printf("Error registering user: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"auth_token": token})
}

// HandleLogin handles user login and issues a token. Unknown email and wrong
// password produce the same response.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return bodyParseErrorResponse(c)
	}

	if input.Email == "" || input.Password == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Email and password are required", "MISSING_REQUIRED_FIELDS")
	}

	token, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid email or password", "INVALID_CREDENTIALS")
		}
		log.Printf("Error during login for %s: %v", input.Email, err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}

	return c.JSON(fiber.Map{"auth_token": token})
}

// HandleRecoverPassword starts password recovery. The response does not
// reveal whether the email belongs to an account.
func (h *AuthHandler) HandleRecoverPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing recover-password request body: %v", err)
		return bodyParseErrorResponse(c)
	}

	if input.Email == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Email is required", "MISSING_REQUIRED_FIELDS")
	}

	if err := h.authService.RecoverPassword(input.Email); err != nil {
		log.Printf("Error during password recovery: %v", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}

	return c.JSON(fiber.Map{"message": "Password recovery email sent"})
}
