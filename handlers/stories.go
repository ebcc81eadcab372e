package handlers

import (
	"devotion-platform/config"
	"devotion-platform/middleware"
	"devotion-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStoryRoutes(app *fiber.App, storyService *services.StoryService, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.AdminMiddleware(cfg)

	stories := app.Group("/api/stories")
	stories.Get("/", storyService.ListStories)
	stories.Get("/:id", storyService.GetStory)
	stories.Post("/", auth, storyService.CreateStory)
	stories.Post("/:id/images", auth, storyService.UploadStoryImage)
	stories.Put("/:id/approve", admin, storyService.ApproveStory)
	stories.Put("/:id/reject", admin, storyService.RejectStory)
	stories.Post("/:id/like", auth, storyService.ToggleLike)
	stories.Post("/:id/comment", auth, storyService.AddComment)
}
