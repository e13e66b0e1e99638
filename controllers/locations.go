// path: controllers/locations.go
package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleLocationMap serves the monitoring sites as a GeoJSON
// FeatureCollection for map clients.
func (h *Handlers) HandleLocationMap(c *fiber.Ctx) error {
	ctx, cancel := h.requestCtx(c)
	defer cancel()

	fc, err := h.Resolver.LocationMap(ctx)
	if err != nil {
		return failure(c, err)
	}
	body, err := fc.MarshalJSON()
	if err != nil {
		return serverErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}
