package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderRequestID cabecera de correlación; se respeta si el cliente la envía.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID key en c.Locals del request id.
const LocalRequestID = "request_id"

// httpObserver lo implementa metrics.PrometheusObserver.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger asigna un request id, registra cada petición y alimenta las métricas HTTP.
func RequestLogger(log zerolog.Logger, obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)

		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler escriba la respuesta antes de leer el estado.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Int64("staff_id", GetStaffID(c)).
			Msg("http request")

		if obs != nil {
			obs.ObserveHTTP(c.Method(), route, status, elapsed)
		}
		return nil
	}
}

// GetRequestID devuelve el request id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
