package handlerutil

import (
	"geo-users/cmd/server/ctxkeys"
	"geo-users/cmd/server/handlers/httperr"
	"geo-users/internal/logger"
	"geo-users/internal/services/auth"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every successful response.
type Envelope struct {
	StatusCode int    `json:"status_code" example:"200"`
	Message    string `json:"message" example:"User created successfully"`
	Data       any    `json:"data,omitempty"`
}

// OK writes a 200 envelope. A nil data leaves the field out.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		StatusCode: fiber.StatusOK,
		Message:    message,
		Data:       data,
	})
}

// GetClaims returns the verified token claims stored by the jwt middleware.
func GetClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := c.Locals(ctxkeys.Claims).(*auth.Claims)
	if !ok || claims == nil {
		logger.L().Error("claims not found in context", "handler", "GetClaims", "path", c.Path())
		return nil, httperr.Fail(httperr.ErrInvalidToken)
	}
	return claims, nil
}
