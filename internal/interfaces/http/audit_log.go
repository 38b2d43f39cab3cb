package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

// AuditLog registra cada escritura con el operador autenticado (vacío si no hay JWT).
func AuditLog(log *logger.Logger) fiber.Handler {
	log = log.Named("audit")
	return func(c *fiber.Ctx) error {
		err := c.Next()
		ev := log.Info()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Str("user_id", GetUserID(c)).
			Str("role", GetRole(c)).
			Msg("escritura")
		return err
	}
}
