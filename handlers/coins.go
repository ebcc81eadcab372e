// handlers/coins.go
package handlers

import (
	"errors"
	"time"

	"devotion-platform/config"
	"devotion-platform/middleware"
	"devotion-platform/models"
	"devotion-platform/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCoinRoutes(app *fiber.App, rewardService *services.RewardService, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	coins := app.Group("/api/coins", auth)

	coins.Get("/balance", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var user models.User
		if err := rewardService.DB.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"coins":      user.Coins,
				"level":      user.Level,
				"experience": user.Experience,
			},
		})
	})

	coins.Post("/daily-login", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		streak, granted, err := rewardService.EvaluateLoginStreak(userID, time.Now())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}

		var user models.User
		if err := rewardService.DB.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
		}

		message := "Daily login reward claimed!"
		if !granted {
			message = "Daily login reward already claimed today"
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": message,
			"data": fiber.Map{
				"coins":   user.Coins,
				"streak":  streak,
				"granted": granted,
				"reward":  cfg.DailyLoginCoins,
			},
		})
	})
}
