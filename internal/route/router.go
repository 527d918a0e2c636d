package router

import (
	"mint-service/internal/module/mint/handler"
	"mint-service/internal/pkg/metrics"
	"mint-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerMint *handler.MintHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})
	app.Get("/metrics", metrics.Handler())

	Api := app.Group("/api")

	// public routes
	v1 := Api.Group("/v1")
	v1.Post("/demo-mint", m.RateLimit, handlerMint.DemoMint)
	v1.Get("/mints/:tx_hash", handlerMint.ShowMint)

	return app

}
