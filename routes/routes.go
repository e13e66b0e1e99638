// path: routes/routes.go
package routes

import (
	"github.com/RodyMacay/biodiversity-monitoring/controllers"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all API endpoints to the app. The auth middleware must
// already be installed.
func Register(app *fiber.App, h *controllers.Handlers) {
	app.Get("/healthz", controllers.HandleHealthz)
	app.Get("/health", controllers.HandleHealth)
	app.Get("/readyz", h.HandleReadyz)

	app.Post("/graphql", h.HandleGraphQL)
	app.Get("/graphql", h.HandleGraphQL)

	app.Post("/seed-data", h.HandleSeedData)

	api := app.Group("/api")
	api.Get("/locations/geojson", h.HandleLocationMap)
}
