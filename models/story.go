package models

import "time"

type StoryStatus string

const (
	StoryStatusPending  StoryStatus = "pending"
	StoryStatusApproved StoryStatus = "approved"
	StoryStatusRejected StoryStatus = "rejected"
)

// StoryCategories are the accepted scripture/tradition categories.
var StoryCategories = []string{
	"Ramayana",
	"Mahabharata",
	"Puranas",
	"Vedas",
	"Upanishads",
	"Bhagavad Gita",
	"Saints & Sages",
	"Temples",
	"Festivals",
	"Dharma",
	"Yoga & Meditation",
	"Other",
}

type StoryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Story is user-submitted and moderated. CoinsAwarded flips false→true
// exactly once, on the approval that pays the author.
type Story struct {
	ID       string      `gorm:"primaryKey;type:uuid" json:"id"`
	Title    string      `gorm:"not null" json:"title"`
	Slug     string      `gorm:"index;not null" json:"slug"`
	Content  string      `gorm:"type:text;not null" json:"content"`
	Category string      `gorm:"index;not null" json:"category"`
	Tags     []string    `gorm:"serializer:json" json:"tags,omitempty"`
	AuthorID string      `gorm:"type:uuid;index;not null" json:"author_id"`
	Images   []StoryImage `gorm:"serializer:json" json:"images,omitempty"`

	Views  int64 `gorm:"default:0" json:"views"`
	Shares int64 `gorm:"default:0" json:"shares"`

	Status       StoryStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	Featured     bool        `gorm:"default:false" json:"featured"`
	CoinsAwarded bool        `gorm:"default:false" json:"coins_awarded"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Timestamps
}

// StoryLike is one entry in a story's like set. Freely toggled, unlike
// task completions and story awards.
type StoryLike struct {
	ID      string    `gorm:"primaryKey;type:uuid" json:"id"`
	StoryID string    `gorm:"type:uuid;not null;uniqueIndex:idx_story_liker" json:"story_id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_story_liker" json:"user_id"`
	LikedAt time.Time `gorm:"autoCreateTime" json:"liked_at"`
}

type StoryComment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	StoryID   string    `gorm:"type:uuid;index;not null" json:"story_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
