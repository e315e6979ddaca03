package middlewares

import (
	"geo-users/cmd/server/ctxkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

// maxRequestIDLen bounds client supplied ids echoed back in responses.
const maxRequestIDLen = 128

// RequestID tags every request with an id, reusing a sane X-Request-ID from
// the client or minting a ULID otherwise.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = ulid.Make().String()
		}

		c.Locals(ctxkeys.RequestID, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}
