package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skycast/widget/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, lookups *service.LookupService) {
	handler := NewHandler(lookups)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Local backend API consumed by the widget in local mode
	api := app.Group("/api")
	{
		api.Get("/weather", handler.GetWeather)
		api.Get("/history", handler.GetHistory)
	}
}
