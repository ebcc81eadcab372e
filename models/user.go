package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the account plus its progression record: coins, experience, level
// and the daily-login streak all live on the same row so a grant is a
// single-document update.
type User struct {
	ID       string   `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string   `gorm:"not null" json:"name"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Password string   `gorm:"not null" json:"-"`
	Phone    string   `json:"phone,omitempty"`
	Avatar   string   `gorm:"type:text" json:"avatar"`
	Role     UserRole `gorm:"type:varchar(16);default:'user'" json:"role"`
	IsActive bool     `gorm:"default:true" json:"is_active"`

	// Progression — level is derived from experience, never set directly
	Coins      int64 `gorm:"default:100" json:"coins"`
	Experience int64 `gorm:"default:0" json:"experience"`
	Level      int   `gorm:"default:1" json:"level"`

	// Daily login streak watermark (midnight-normalized)
	DailyLoginStreak int        `gorm:"default:0" json:"daily_login_streak"`
	LastLoginDate    *time.Time `json:"last_login_date,omitempty"`

	// Activity counters (feed badge thresholds)
	TasksCompleted   int64 `gorm:"default:0" json:"tasks_completed"`
	StoriesSubmitted int64 `gorm:"default:0" json:"stories_submitted"`
	StoriesApproved  int64 `gorm:"default:0" json:"stories_approved"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
