package models

import "time"

// LeaderboardEntry is a periodic snapshot row maintained by the leaderboard
// worker, keyed by user. Rank is recomputed on every sweep.
type LeaderboardEntry struct {
	UserID     string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Rank       int       `gorm:"index;not null" json:"rank"`
	Name       string    `json:"name"`
	Avatar     string    `gorm:"type:text" json:"avatar"`
	Coins      int64     `json:"coins"`
	Level      int       `json:"level"`
	Experience int64     `json:"experience"`
	SnapshotAt time.Time `json:"snapshot_at"`
}
