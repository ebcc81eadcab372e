package services

import (
	"errors"
	"slices"

	"devotion-platform/models"
	"devotion-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ContentService struct {
	DB *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{DB: db}
}

// ListContent returns active library items, filtered by type, deity,
// category and an ASCII-folded substring search.
func (s *ContentService) ListContent(c *fiber.Ctx) error {
	query := s.DB.Where("is_active = ?", true)

	if contentType := c.Query("type"); contentType != "" {
		query = query.Where("type = ?", contentType)
	}
	if deity := c.Query("deity"); deity != "" {
		query = query.Where("deity = ?", utils.DisplayLabel(deity))
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		pattern := utils.LikePattern(search)
		query = query.Where("slug LIKE ? OR LOWER(title) LIKE ?", pattern, pattern)
	}

	var items []models.Content
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch content"})
	}

	return c.JSON(fiber.Map{"success": true, "data": items, "total": len(items)})
}

// GetContent returns a single library item and counts the view.
func (s *ContentService) GetContent(c *fiber.Ctx) error {
	var item models.Content
	if err := s.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Content not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	if err := s.DB.Model(&models.Content{}).Where("id = ?", item.ID).
		Update("views", gorm.Expr("views + 1")).Error; err == nil {
		item.Views++
	}

	var likes int64
	s.DB.Model(&models.ContentLike{}).Where("content_id = ?", item.ID).Count(&likes)

	return c.JSON(fiber.Map{"success": true, "data": item, "likes": likes})
}

// CreateContent adds a library item (Admin only).
func (s *ContentService) CreateContent(c *fiber.Ctx) error {
	var req struct {
		Title      string              `json:"title"`
		Type       string              `json:"type"`
		Body       models.ContentBody  `json:"body"`
		Meaning    string              `json:"meaning"`
		Benefits   []string            `json:"benefits"`
		Deity      string              `json:"deity"`
		Category   string              `json:"category"`
		Tags       []string            `json:"tags"`
		AudioURL   string              `json:"audio_url"`
		VideoURL   string              `json:"video_url"`
		Images     []models.StoryImage `json:"images"`
		Difficulty string              `json:"difficulty"`
		Duration   string              `json:"duration"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	if req.Title == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Title and category are required"})
	}
	if !slices.Contains(models.ContentTypes, req.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid content type"})
	}
	if req.Difficulty == "" {
		req.Difficulty = "beginner"
	}

	item := models.Content{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Slug:       slug.Make(req.Title),
		Type:       req.Type,
		Body:       req.Body,
		Meaning:    req.Meaning,
		Benefits:   req.Benefits,
		Deity:      utils.DisplayLabel(req.Deity),
		Category:   req.Category,
		Tags:       req.Tags,
		AudioURL:   req.AudioURL,
		VideoURL:   req.VideoURL,
		Images:     req.Images,
		Difficulty: req.Difficulty,
		Duration:   req.Duration,
		IsActive:   true,
		CreatedBy:  c.Locals("user_id").(string),
	}

	if err := s.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create content"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// ToggleLike flips the acting user's like on a library item.
func (s *ContentService) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	if err := s.requireContent(contentID); err != nil {
		return contentErrResponse(c, err)
	}

	liked, likes, err := toggleMembership(s.DB, &models.ContentLike{}, "content_id", contentID, userID,
		func() interface{} {
			return &models.ContentLike{ID: uuid.NewString(), ContentID: contentID, UserID: userID}
		})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to toggle like"})
	}

	message := "Content liked"
	if !liked {
		message = "Content unliked"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "likes": likes})
}

// ToggleBookmark flips the acting user's bookmark on a library item.
func (s *ContentService) ToggleBookmark(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	if err := s.requireContent(contentID); err != nil {
		return contentErrResponse(c, err)
	}

	saved, count, err := toggleMembership(s.DB, &models.ContentBookmark{}, "content_id", contentID, userID,
		func() interface{} {
			return &models.ContentBookmark{ID: uuid.NewString(), ContentID: contentID, UserID: userID}
		})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to toggle bookmark"})
	}

	message := "Content bookmarked"
	if !saved {
		message = "Bookmark removed"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "bookmarks": count})
}

func (s *ContentService) requireContent(id string) error {
	var item models.Content
	return s.DB.Select("id").First(&item, "id = ?", id).Error
}

func contentErrResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Content not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
}
