package handlers

import (
	"errors"
	"fmt"
	"time"

	"vexpo/internal/repositories"
	"vexpo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the uniform error envelope every failing request
// returns: {success:false, message, timestamp, error_code}.
func ErrorResponse(c *fiber.Ctx, status int, message, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"message":    message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"error_code": code,
	})
}

// validationErrorResponse writes the envelope for a failed struct
// validation, with a per-field details map.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	details := map[string]string{}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":    false,
		"message":    "Invalid input data",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"error_code": "VALIDATION_ERROR",
		"details":    details,
	})
}

// bodyParseErrorResponse writes the envelope for an unparseable JSON body.
func bodyParseErrorResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "VALIDATION_ERROR")
}

// serviceErrorResponse maps a service error to its HTTP status and error
// code. Not-found codes differ per entity, so the caller names them;
// everything unrecognized becomes a generic 500.
func serviceErrorResponse(c *fiber.Ctx, err error, notFoundMessage, notFoundCode string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, notFoundMessage, notFoundCode)
	case errors.Is(err, services.ErrAccessDenied):
		return ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED")
	case errors.Is(err, services.ErrNoUpdateFields):
		return ErrorResponse(c, fiber.StatusBadRequest, "No fields to update", "NO_UPDATE_FIELDS")
	case errors.Is(err, services.ErrAlreadyRegistered):
		return ErrorResponse(c, fiber.StatusBadRequest, "User already registered for this expo", "ALREADY_REGISTERED")
	case errors.Is(err, services.ErrExhibitorExists):
		return ErrorResponse(c, fiber.StatusBadRequest, "Exhibitor profile already exists for this user", "EXHIBITOR_EXISTS")
	case errors.Is(err, services.ErrBoothExists):
		return ErrorResponse(c, fiber.StatusBadRequest, "Virtual booth already exists for this exhibitor", "BOOTH_EXISTS")
	case errors.Is(err, services.ErrInvalidDate):
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid input data", "VALIDATION_ERROR")
	default:
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "INTERNAL_SERVER_ERROR")
	}
}

// searchParamsFromQuery builds the shared search parameters from a list
// endpoint's query string.
func searchParamsFromQuery(c *fiber.Ctx) repositories.SearchParams {
	return repositories.SearchParams{
		Query:     c.Query("query"),
		Limit:     c.QueryInt("limit", repositories.DefaultLimit),
		Offset:    c.QueryInt("offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}
