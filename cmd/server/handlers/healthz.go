package handlers

import (
	"context"
	"time"

	"geo-users/internal/clients/mongo"
	"geo-users/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const HealthzTimeout = 5 * time.Second

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Healthz returns the health of the server.
// @Summary Health check
// @Description Reports "ok" when the primary answers a ping, "down" otherwise
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} HealthResponse
// @Router /healthz [get]
func Healthz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), HealthzTimeout)
	defer cancel()

	db := mongo.DB()
	if db == nil {
		logger.L().Warn("health check failed", "error", mongo.ErrNotInitialized)
		return c.Status(fiber.StatusInternalServerError).JSON(HealthResponse{Status: "down"})
	}

	if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
		logger.L().Warn("health check failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(HealthResponse{Status: "down"})
	}

	return c.JSON(HealthResponse{Status: "ok"})
}
