package services

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"devotion-platform/models"
	"devotion-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type StoryService struct {
	DB      *gorm.DB
	Rewards *RewardService
}

func NewStoryService(db *gorm.DB, rewards *RewardService) *StoryService {
	return &StoryService{DB: db, Rewards: rewards}
}

// ListStories returns approved stories, filtered by category and an
// ASCII-folded substring search, newest first, paginated.
func (s *StoryService) ListStories(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := s.DB.Model(&models.Story{}).Where("status = ?", models.StoryStatusApproved)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		// slugs are already folded to ASCII, so transliterated queries match
		pattern := utils.LikePattern(search)
		query = query.Where("slug LIKE ? OR LOWER(title) LIKE ? OR LOWER(content) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	var stories []models.Story
	if err := query.Preload("Author").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&stories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch stories"})
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(fiber.Map{
		"success":     true,
		"data":        stories,
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetStory returns a single story and counts the view.
func (s *StoryService) GetStory(c *fiber.Ctx) error {
	var story models.Story
	if err := s.DB.Preload("Author").First(&story, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	if err := s.DB.Model(&models.Story{}).Where("id = ?", story.ID).
		Update("views", gorm.Expr("views + 1")).Error; err == nil {
		story.Views++
	}

	var comments []models.StoryComment
	s.DB.Where("story_id = ?", story.ID).Order("created_at ASC").Find(&comments)

	var likes int64
	s.DB.Model(&models.StoryLike{}).Where("story_id = ?", story.ID).Count(&likes)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    story,
		"likes":   likes,
		"comments": comments,
	})
}

// CreateStory submits a story for moderation (status pending; the approval
// grant fires later, once, when a moderator approves it).
func (s *StoryService) CreateStory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Title    string              `json:"title"`
		Content  string              `json:"content"`
		Category string              `json:"category"`
		Tags     []string            `json:"tags"`
		Images   []models.StoryImage `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	req.Title = strings.TrimSpace(req.Title)
	if len(req.Title) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Title must be at least 10 characters"})
	}
	if len(req.Content) < 50 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Content must be at least 50 characters"})
	}
	if !slices.Contains(models.StoryCategories, req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid story category"})
	}

	story := models.Story{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		AuthorID: userID,
		Images:   req.Images,
		Status:   models.StoryStatusPending,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&story).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("stories_submitted", gorm.Expr("stories_submitted + 1")).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to submit story"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Story submitted successfully. Awaiting approval.",
		"data":    story,
	})
}

// UploadStoryImage attaches an uploaded image to the author's own story.
func (s *StoryService) UploadStoryImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	storyID := c.Params("id")

	var story models.Story
	if err := s.DB.First(&story, "id = ?", storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}
	if story.AuthorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Not your story"})
	}

	imageFile, err := c.FormFile("image")
	if err != nil || imageFile.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "image file is required"})
	}

	url, err := utils.UploadMedia(imageFile, "stories/"+uuid.NewString()+".img")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to upload image"})
	}

	story.Images = append(story.Images, models.StoryImage{URL: url, Caption: c.FormValue("caption")})
	if err := s.DB.Save(&story).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save story"})
	}

	return c.JSON(fiber.Map{"success": true, "data": story})
}

// ApproveStory approves a pending story and pays the author exactly once
// (Admin only). Re-approving an approved story is a no-op for coins.
func (s *StoryService) ApproveStory(c *fiber.Ctx) error {
	story, alreadyAwarded, err := s.Rewards.ApproveStory(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Story approved successfully",
		"data":            story,
		"already_awarded": alreadyAwarded,
	})
}

// RejectStory marks a story rejected (Admin only). The coins_awarded flag
// is deliberately untouched: rejecting never claws back a past award and a
// later approval still pays at most once.
func (s *StoryService) RejectStory(c *fiber.Ctx) error {
	var story models.Story
	if err := s.DB.First(&story, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	if err := s.DB.Model(&models.Story{}).Where("id = ?", story.ID).
		Update("status", models.StoryStatusRejected).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to reject story"})
	}
	story.Status = models.StoryStatusRejected

	return c.JSON(fiber.Map{"success": true, "message": "Story rejected", "data": story})
}

// ToggleLike flips the acting user's membership in the story's like set
// and returns the new cardinality. Freely reversible, never rewarded.
func (s *StoryService) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	storyID := c.Params("id")

	var story models.Story
	if err := s.DB.First(&story, "id = ?", storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	liked, likes, err := toggleMembership(s.DB, &models.StoryLike{}, "story_id", storyID, userID,
		func() interface{} {
			return &models.StoryLike{ID: uuid.NewString(), StoryID: storyID, UserID: userID}
		})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to toggle like"})
	}

	message := "Story liked"
	if !liked {
		message = "Story unliked"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "likes": likes})
}

// AddComment appends a comment to a story.
func (s *StoryService) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	storyID := c.Params("id")

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Comment text is required"})
	}

	var story models.Story
	if err := s.DB.First(&story, "id = ?", storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "DB error"})
	}

	comment := models.StoryComment{
		ID:      uuid.NewString(),
		StoryID: storyID,
		UserID:  userID,
		Text:    strings.TrimSpace(req.Text),
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to add comment"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Comment added successfully", "data": comment})
}

// toggleMembership removes the (owner, user) row if present, inserts it
// otherwise, and returns membership plus the new set size.
func toggleMembership(db *gorm.DB, model interface{}, ownerColumn, ownerID, userID string,
	newRow func() interface{}) (bool, int64, error) {

	where := ownerColumn + " = ? AND user_id = ?"

	var existing int64
	if err := db.Model(model).Where(where, ownerID, userID).Count(&existing).Error; err != nil {
		return false, 0, err
	}

	member := false
	if existing > 0 {
		if err := db.Where(where, ownerID, userID).Delete(model).Error; err != nil {
			return false, 0, err
		}
	} else {
		if err := db.Create(newRow()).Error; err != nil {
			// a concurrent like beat us; the toggle result is "member"
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return false, 0, err
			}
		}
		member = true
	}

	var count int64
	if err := db.Model(model).Where(ownerColumn+" = ?", ownerID).Count(&count).Error; err != nil {
		return member, 0, err
	}
	return member, count, nil
}
