package services

import (
	"log"

	"devotion-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// SeedBadgeTypes upserts the predefined triggers so AutoAwardBadges has
// stable IDs to reference (idempotent, keyed by Code).
func (s *BadgeService) SeedBadgeTypes() error {
	for _, trigger := range models.BadgeTriggers {
		attrs := trigger
		attrs.ID = uuid.NewString()

		// lookup by code only; the generated ID is a creation attribute,
		// so a reseed on restart matches the existing row instead of
		// colliding with it
		var badge models.BadgeType
		if err := s.DB.Where(models.BadgeType{Code: trigger.Code}).
			Attrs(attrs).
			FirstOrCreate(&badge).Error; err != nil {
			return err
		}
	}
	return nil
}

// AutoAwardBadges checks all badge triggers for a user after a progress update
func (s *BadgeService) AutoAwardBadges(userID string) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var triggers []models.BadgeType
	if err := s.DB.Find(&triggers).Error; err != nil {
		return err
	}

	for _, trigger := range triggers {
		if !meetsThreshold(&user, trigger.Threshold) {
			continue
		}
		var count int64
		s.DB.Model(&models.UserBadge{}).
			Where("user_id = ? AND badge_type_id = ?", userID, trigger.ID).
			Count(&count)
		if count == 0 {
			userBadge := models.UserBadge{
				ID:          uuid.NewString(),
				UserID:      userID,
				BadgeTypeID: trigger.ID,
			}
			if err := s.DB.Create(&userBadge).Error; err != nil {
				return err
			}
			log.Printf("Badge awarded: %s → %s", trigger.Name, userID)
		}
	}
	return nil
}

// UserBadges returns the awarded badges joined with their type details.
func (s *BadgeService) UserBadges(userID string) ([]map[string]interface{}, error) {
	var rows []struct {
		models.UserBadge
		Code        string
		Name        string
		Description string
		Icon        string
		Rarity      string
	}
	err := s.DB.Table("user_badges").
		Select("user_badges.*, badge_types.code, badge_types.name, badge_types.description, badge_types.icon, badge_types.rarity").
		Joins("INNER JOIN badge_types ON badge_types.id = user_badges.badge_type_id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.awarded_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	badges := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		badges = append(badges, map[string]interface{}{
			"id":          r.UserBadge.ID,
			"code":        r.Code,
			"name":        r.Name,
			"description": r.Description,
			"icon":        r.Icon,
			"rarity":      r.Rarity,
			"awarded_at":  r.AwardedAt,
		})
	}
	return badges, nil
}

func meetsThreshold(user *models.User, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "tasks_completed":
			if user.TasksCompleted < required {
				return false
			}
		case "stories_approved":
			if user.StoriesApproved < required {
				return false
			}
		case "daily_login_streak":
			if int64(user.DailyLoginStreak) < required {
				return false
			}
		case "level":
			if int64(user.Level) < required {
				return false
			}
		case "event": // special: always true (e.g., signup)
			return true
		}
	}
	return true
}
