// path: controllers/helpers.go
package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/graph"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/resolvers"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const defaultTimeout = 8 * time.Second

// Handlers carries what the HTTP endpoints need. Build it once at startup.
type Handlers struct {
	Schema   *graph.Schema
	Resolver *resolvers.Resolver
	Timeout  time.Duration
	Log      zerolog.Logger
}

type ErrorResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func badReq(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResp{OK: false, Error: msg})
}
func serverErr(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResp{OK: false, Error: err.Error()})
}

// failure maps a resolver error onto an HTTP status.
func failure(c *fiber.Ctx, err error) error {
	var authErr *models.AuthError
	if errors.As(err, &authErr) {
		status := fiber.StatusUnauthorized
		if authErr.Reason == models.AuthForbidden {
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(ErrorResp{OK: false, Error: err.Error()})
	}
	if models.IsValidation(err) {
		return badReq(c, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusGatewayTimeout).JSON(ErrorResp{OK: false, Error: "request timed out"})
	}
	return serverErr(c, err)
}

// requestCtx derives the per-request deadline from the context the auth
// middleware populated.
func (h *Handlers) requestCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
