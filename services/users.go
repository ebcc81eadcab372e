package services

import (
	"errors"
	"log"
	"path/filepath"
	"strings"

	"devotion-platform/models"
	"devotion-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Me returns the authenticated profile with its completed tasks and
// submitted stories.
func (s *UserService) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	type CompletedTask struct {
		TaskID      string `json:"task_id"`
		Title       string `json:"title"`
		CoinsReward int64  `json:"coins_reward"`
	}
	var completed []CompletedTask
	if err := s.DB.Table("task_completions").
		Select("task_completions.task_id, tasks.title, tasks.coins_reward").
		Joins("INNER JOIN tasks ON tasks.id = task_completions.task_id").
		Where("task_completions.user_id = ?", userID).
		Order("task_completions.completed_at DESC").
		Scan(&completed).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	type SubmittedStory struct {
		ID     string             `json:"id"`
		Title  string             `json:"title"`
		Status models.StoryStatus `json:"status"`
	}
	var submitted []SubmittedStory
	if err := s.DB.Model(&models.Story{}).
		Select("id, title, status").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Scan(&submitted).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":              user,
			"completed_tasks":   completed,
			"submitted_stories": submitted,
		},
	})
}

// UpdateMe updates name/phone and, when a multipart "avatar" file is
// attached, uploads the new avatar image.
func (s *UserService) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	if avatarFile, err := c.FormFile("avatar"); err == nil && avatarFile.Size > 0 {
		ext := filepath.Ext(avatarFile.Filename)
		if ext == "" {
			ext = ".png"
		}
		url, err := utils.UploadMedia(avatarFile, "avatars/"+uuid.NewString()+ext)
		if err != nil {
			log.Printf("Avatar upload failed for %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to upload avatar"})
		}
		user.Avatar = url
	} else {
		var req struct {
			Name   *string `json:"name"`
			Phone  *string `json:"phone"`
			Avatar *string `json:"avatar"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if len(name) < 3 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Name must be at least 3 characters"})
			}
			user.Name = name
		}
		if req.Phone != nil {
			user.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Avatar != nil {
			user.Avatar = *req.Avatar
		}
	}

	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Leaderboard serves the worker-maintained snapshot, falling back to a live
// query before the first sweep has run.
func (s *UserService) Leaderboard(c *fiber.Ctx) error {
	var entries []models.LeaderboardEntry
	if err := s.DB.Order("rank ASC").Limit(100).Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	if len(entries) == 0 {
		var users []models.User
		if err := s.DB.Where("is_active = ?", true).
			Order("coins DESC, experience DESC").
			Limit(100).
			Find(&users).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
		}
		entries = make([]models.LeaderboardEntry, len(users))
		for i, u := range users {
			entries[i] = models.LeaderboardEntry{
				UserID:     u.ID,
				Rank:       i + 1,
				Name:       u.Name,
				Avatar:     u.Avatar,
				Coins:      u.Coins,
				Level:      u.Level,
				Experience: u.Experience,
			}
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": entries, "total": len(entries)})
}
