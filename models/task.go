package models

import "time"

type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "easy"
	DifficultyMedium TaskDifficulty = "medium"
	DifficultyHard   TaskDifficulty = "hard"
)

// TaskCategories are the accepted devotional activity categories.
var TaskCategories = []string{
	"Daily Puja",
	"Mantra Chanting",
	"Scripture Reading",
	"Temple Visit",
	"Seva (Service)",
	"Meditation",
	"Yoga Practice",
	"Festival Celebration",
	"Learning",
	"Sharing Knowledge",
	"Other",
}

// MinTaskReward is the smallest allowed coin reward for a task.
const MinTaskReward = 10

type TaskInstruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

type Task struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"index;not null" json:"category"`
	Difficulty  TaskDifficulty `gorm:"type:varchar(16);default:'easy'" json:"difficulty"`

	CoinsReward int64  `gorm:"not null" json:"coins_reward"`
	Duration    string `json:"duration"`

	Instructions []TaskInstruction `gorm:"serializer:json" json:"instructions,omitempty"`
	Requirements []string          `gorm:"serializer:json" json:"requirements,omitempty"`

	Icon  string `gorm:"size:10;default:'🕉️'" json:"icon"`
	Image string `gorm:"type:text" json:"image,omitempty"`

	IsDaily  bool `gorm:"default:false" json:"is_daily"`
	IsActive bool `gorm:"default:true;index" json:"is_active"`

	// Denormalized count; the completion set itself lives in TaskCompletion
	TotalCompletions int64 `gorm:"default:0" json:"total_completions"`

	CreatedBy string `gorm:"type:uuid;index" json:"created_by"`

	Timestamps
}

// TaskCompletion is one entry in a task's completion set. The composite
// unique index is the payout-idempotency guard: the insert either succeeds
// exactly once per (task, user) or fails with a duplicate-key error.
type TaskCompletion struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	TaskID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_task_user" json:"task_id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_task_user" json:"user_id"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
	Proof       string    `gorm:"type:text" json:"proof,omitempty"`
}
