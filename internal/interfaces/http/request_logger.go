package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderRequestID se acepta del cliente o se genera, y se devuelve en la respuesta.
const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// RequestObserver recibe la duración de cada petición (ver infrastructure/metrics).
type RequestObserver interface {
	ObserveRequest(method, route, status string, elapsed time.Duration)
}

// RequestLogger registra cada petición con zerolog y la reporta al observer si no es nil.
func RequestLogger(log zerolog.Logger, obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalRequestID, rid)
		c.Set(HeaderRequestID, rid)

		if err := c.Next(); err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		if obs != nil {
			obs.ObserveRequest(c.Method(), c.Route().Path, strconv.Itoa(status), elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("user_id", GetUserID(c)).
			Dur("elapsed", elapsed).
			Msg("http")
		return nil
	}
}
