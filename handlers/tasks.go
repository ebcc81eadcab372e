package handlers

import (
	"devotion-platform/config"
	"devotion-platform/middleware"
	"devotion-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, taskService *services.TaskService, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.AdminMiddleware(cfg)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", taskService.ListTasks)
	// register before the :id matcher
	tasks.Get("/user/completed", auth, taskService.UserCompletedTasks)
	tasks.Get("/:id", taskService.GetTask)
	tasks.Post("/", admin, taskService.CreateTask)
	tasks.Post("/:id/complete", auth, taskService.CompleteTask)
}
