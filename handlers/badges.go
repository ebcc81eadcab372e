package handlers

import (
	"devotion-platform/config"
	"devotion-platform/middleware"
	"devotion-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBadgeRoutes(app *fiber.App, badgeService *services.BadgeService, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	app.Get("/api/badges", auth, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		badges, err := badgeService.UserBadges(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch badges"})
		}

		return c.JSON(fiber.Map{"success": true, "data": badges, "total": len(badges)})
	})
}
