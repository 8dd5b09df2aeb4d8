package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/islandferry/pkg/api/routes"
	"github.com/travigo/islandferry/pkg/http_server"
)

func NewApp(backend *routes.Backend) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(http_server.NewLogger())
	webApp.Use(http_server.NewMetrics())

	routes.PageRouter(webApp, backend)
	routes.APIRouter(webApp.Group("/api"), backend)

	webApp.Get("/metrics", http_server.MetricsHandler())

	return webApp
}

func SetupServer(listen string, backend *routes.Backend) error {
	return NewApp(backend).Listen(listen)
}
