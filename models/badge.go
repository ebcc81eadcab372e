package models

import "time"

// BadgeType: static config for an earnable badge
type BadgeType struct {
	ID          string           `gorm:"primaryKey;type:uuid"`
	Code        string           `gorm:"uniqueIndex;not null"` // e.g., "STREAK_7", "FIRST_STORY"
	Name        string           `gorm:"not null"`
	Description string
	Icon        string           `gorm:"size:10"`
	Rarity      string           `gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"serializer:json"`                   // e.g., {"daily_login_streak": 7}
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

/// UserBadge: awarded instance (many-to-many)
type UserBadge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeTypeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"badge_type_id"`
	AwardedAt   time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// Predefined badge triggers, seeded at startup
var BadgeTriggers = []BadgeType{
	{
		Code:        "WELCOME",
		Name:        "Welcome, Seeker!",
		Description: "Joined the platform",
		Icon:        "🙏",
		Rarity:      "common",
		Threshold:   map[string]int64{"event": 1}, // awarded on signup
	},
	{
		Code:        "FIRST_TASK",
		Name:        "First Step on the Path",
		Description: "Completed your first devotional task",
		Icon:        "🪔",
		Rarity:      "common",
		Threshold:   map[string]int64{"tasks_completed": 1},
	},
	{
		Code:        "TASK_10",
		Name:        "Dedicated Devotee",
		Description: "Completed 10 devotional tasks",
		Icon:        "🛕",
		Rarity:      "rare",
		Threshold:   map[string]int64{"tasks_completed": 10},
	},
	{
		Code:        "STREAK_7",
		Name:        "Week of Devotion",
		Description: "Logged in 7 days in a row",
		Icon:        "🔥",
		Rarity:      "rare",
		Threshold:   map[string]int64{"daily_login_streak": 7},
	},
	{
		Code:        "FIRST_STORY",
		Name:        "Storyteller",
		Description: "Had a story approved",
		Icon:        "📖",
		Rarity:      "rare",
		Threshold:   map[string]int64{"stories_approved": 1},
	},
	{
		Code:        "LEVEL_5",
		Name:        "Rising Soul",
		Description: "Reached level 5",
		Icon:        "⭐",
		Rarity:      "epic",
		Threshold:   map[string]int64{"level": 5},
	},
}
