package middlewares

import (
	"errors"

	"geo-users/cmd/server/ctxkeys"
	"geo-users/cmd/server/handlers/httperr"
	"geo-users/internal/logger"
	"geo-users/internal/services/auth"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWT returns the bearer authentication chain for protected routes:
//
//   - no Authorization header                 -> 401 "No token provided"
//   - header other than "Bearer <token>"      -> 401 "Invalid authorization header format"
//   - bad signature, algorithm, expiry or id  -> 400 "Invalid token"
//
// On success the *auth.Claims are stored under ctxkeys.Claims.
func JWT(secret string) fiber.Handler {
	verify := jwtware.New(jwtware.Config{
		KeyFunc:    auth.KeyFunc([]byte(secret)),
		Claims:     &auth.Claims{},
		ContextKey: ctxkeys.Token,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(ctxkeys.Token).(*jwt.Token)
			if !ok {
				return httperr.Fail(httperr.ErrInvalidToken)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return httperr.Fail(httperr.ErrInvalidToken)
			}

			c.Locals(ctxkeys.Claims, claims)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.L().Info("token rejected", "path", c.Path(), "error", err)
			return httperr.Fail(httperr.ErrInvalidToken)
		},
	})

	return func(c *fiber.Ctx) error {
		if _, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization)); err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				return httperr.Fail(httperr.ErrNoToken)
			}
			return httperr.Fail(httperr.ErrBadAuthHeader)
		}
		return verify(c)
	}
}
