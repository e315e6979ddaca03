package httperr

import (
	"errors"

	"geo-users/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// E represents an HTTP error with status code and message
type E struct {
	Status  int    `json:"status_code" example:"400"`
	Message string `json:"message" example:"Invalid request body"`
}

// Error implements the error interface
func (e E) Error() string {
	return e.Message
}

// JSON returns the error as JSON response
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// Fail returns the error for Fiber's global error handler to process
func Fail(err E) error {
	return err
}

// BadRequest returns a 400 carrying message.
func BadRequest(message string) error {
	return Fail(E{Status: fiber.StatusBadRequest, Message: message})
}

// Pre-defined HTTP errors
var (
	ErrNoToken         = E{Status: 401, Message: "No token provided"}
	ErrBadAuthHeader   = E{Status: 401, Message: "Invalid authorization header format"}
	ErrInvalidToken    = E{Status: 400, Message: "Invalid token"}
	ErrInvalidBody     = E{Status: 400, Message: "Invalid request body"}
	ErrUserExists      = E{Status: 400, Message: "User already exists"}
	ErrDestinationMiss = E{Status: 400, Message: "Please provide both destination_latitude and destination_longitude in query params"}
	ErrDestinationNaN  = E{Status: 400, Message: "destination_latitude and destination_longitude must be valid numbers"}
	ErrWeekNumberMiss  = E{Status: 400, Message: "Please provide the 'week_number' query parameter. Example: ?week_number=0,1,2"}
	ErrWeekNumberRange = E{Status: 400, Message: "All values in 'week_number' must be valid numbers between 0 and 6 (0=Sunday, 6=Saturday)."}
	ErrTooManyRequests = E{Status: 429, Message: "Too many requests"}
	ErrInternal        = E{Status: 500, Message: "Internal server error"}
)

// Handler is the global error handler for Fiber
func Handler(c *fiber.Ctx, err error) error {
	var e E
	if errors.As(err, &e) {
		return e.JSON(c)
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return c.Status(fiberError.Code).JSON(E{
			Status:  fiberError.Code,
			Message: fiberError.Message,
		})
	}

	if log := logger.L(); log != nil {
		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return ErrInternal.JSON(c)
}
