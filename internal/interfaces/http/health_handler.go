package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifica la conexión al almacenamiento (*pgxpool.Pool, memory.Store).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde 200 con la base conectada y 503 si no responde.
func HealthHandler(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "degraded",
				"service":  service,
				"database": "disconnected",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service, "database": "connected"})
	}
}
