package handlers

import (
	"devotion-platform/config"
	"devotion-platform/middleware"
	"devotion-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	users := app.Group("/api/users")
	users.Get("/me", auth, userService.Me)
	users.Put("/me", auth, userService.UpdateMe)
	users.Get("/leaderboard", userService.Leaderboard)
}
