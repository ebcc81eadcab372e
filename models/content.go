package models

import "time"

// ContentTypes are the accepted library item types.
var ContentTypes = []string{
	"Mantra",
	"Shloka",
	"Stotra",
	"Aarti",
	"Chalisa",
	"Bhajan",
	"Quote",
	"Teaching",
	"Festival Info",
	"Temple Info",
	"Deity Info",
	"Scripture",
	"Ritual",
	"Other",
}

// ContentBody holds the multilingual renderings of a library item.
type ContentBody struct {
	Sanskrit        string `json:"sanskrit,omitempty"`
	Hindi           string `json:"hindi,omitempty"`
	English         string `json:"english,omitempty"`
	Transliteration string `json:"transliteration,omitempty"`
}

type Content struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Title string `gorm:"not null" json:"title"`
	Slug  string `gorm:"index;not null" json:"slug"`
	Type  string `gorm:"index;not null" json:"type"`

	Body     ContentBody `gorm:"serializer:json" json:"body"`
	Meaning  string      `gorm:"type:text" json:"meaning,omitempty"`
	Benefits []string    `gorm:"serializer:json" json:"benefits,omitempty"`

	Deity    string   `gorm:"index" json:"deity,omitempty"`
	Category string   `gorm:"index;not null" json:"category"`
	Tags     []string `gorm:"serializer:json" json:"tags,omitempty"`

	AudioURL string       `gorm:"type:text" json:"audio_url,omitempty"`
	VideoURL string       `gorm:"type:text" json:"video_url,omitempty"`
	Images   []StoryImage `gorm:"serializer:json" json:"images,omitempty"`

	Difficulty string `gorm:"type:varchar(16);default:'beginner'" json:"difficulty"`
	Duration   string `json:"duration,omitempty"`

	Views    int64 `gorm:"default:0" json:"views"`
	Featured bool  `gorm:"default:false" json:"featured"`
	IsActive bool  `gorm:"default:true;index" json:"is_active"`

	CreatedBy string `gorm:"type:uuid;index" json:"created_by"`

	Timestamps
}

type ContentLike struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ContentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_content_liker" json:"content_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_content_liker" json:"user_id"`
	LikedAt   time.Time `gorm:"autoCreateTime" json:"liked_at"`
}

type ContentBookmark struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ContentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_content_bookmarker" json:"content_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_content_bookmarker" json:"user_id"`
	SavedAt   time.Time `gorm:"autoCreateTime" json:"saved_at"`
}
