// path: controllers/health.go
package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func HandleHealthz(c *fiber.Ctx) error { return c.SendString("ok") }

// HandleHealth keeps the JSON health shape older clients poll.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK", "message": "server is running"})
}

// HandleReadyz reports whether the document store answers a ping.
func (h *Handlers) HandleReadyz(c *fiber.Ctx) error {
	ctx, cancel := h.requestCtx(c)
	defer cancel()
	if err := h.Resolver.Repo().Ping(ctx); err != nil {
		h.Log.Warn().Err(err).Msg("readiness check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResp{OK: false, Error: "store unavailable"})
	}
	return c.SendString("ready")
}
