package handlers

import (
	"devotion-platform/config"
	"devotion-platform/middleware"
	"devotion-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App, contentService *services.ContentService, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.AdminMiddleware(cfg)

	content := app.Group("/api/content")
	content.Get("/", contentService.ListContent)
	content.Get("/:id", contentService.GetContent)
	content.Post("/", admin, contentService.CreateContent)
	content.Post("/:id/like", auth, contentService.ToggleLike)
	content.Post("/:id/bookmark", auth, contentService.ToggleBookmark)
}
