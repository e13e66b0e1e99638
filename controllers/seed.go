// path: controllers/seed.go
package controllers

import (
	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/seed"
	"github.com/gofiber/fiber/v2"
)

type SeedResp struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Summary seed.Summary `json:"summary"`
}

// HandleSeedData replaces the collections with the sample data set.
func (h *Handlers) HandleSeedData(c *fiber.Ctx) error {
	ctx, cancel := h.requestCtx(c)
	defer cancel()

	sum, err := h.Resolver.SeedData(ctx, auth.FromContext(c.UserContext()))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(SeedResp{OK: true, Message: "sample data loaded", Summary: sum})
}
