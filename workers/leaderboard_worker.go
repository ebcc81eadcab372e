package workers

import (
	"context"
	"log"
	"time"

	"devotion-platform/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardSnapshotter maintains the denormalized leaderboard table the
// public leaderboard endpoint serves from, so the hot read path never
// sorts the users table.
type LeaderboardSnapshotter struct {
	DB   *gorm.DB
	Size int
}

func NewLeaderboardSnapshotter(db *gorm.DB) *LeaderboardSnapshotter {
	return &LeaderboardSnapshotter{DB: db, Size: 100}
}

// Snapshot recomputes the top-N entries and upserts them by user id.
func (w *LeaderboardSnapshotter) Snapshot(ctx context.Context) error {
	var users []models.User
	if err := w.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("coins DESC, experience DESC").
		Limit(w.Size).
		Find(&users).Error; err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}

	now := time.Now().UTC()
	entries := make([]models.LeaderboardEntry, len(users))
	ids := make([]string, len(users))
	for i, u := range users {
		entries[i] = models.LeaderboardEntry{
			UserID:     u.ID,
			Rank:       i + 1,
			Name:       u.Name,
			Avatar:     u.Avatar,
			Coins:      u.Coins,
			Level:      u.Level,
			Experience: u.Experience,
			SnapshotAt: now,
		}
		ids[i] = u.ID
	}

	// Bulk upsert in one statement, then drop rows that fell off the board
	if err := w.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rank",
				"name",
				"avatar",
				"coins",
				"level",
				"experience",
				"snapshot_at",
			}),
		},
	).Create(&entries).Error; err != nil {
		return err
	}

	return w.DB.WithContext(ctx).
		Where("user_id NOT IN ?", ids).
		Delete(&models.LeaderboardEntry{}).Error
}

// PollLeaderboard resnapshots on a fixed interval until ctx is cancelled.
func PollLeaderboard(ctx context.Context, w *LeaderboardSnapshotter, pollInterval time.Duration) {
	log.Println("Starting leaderboard snapshot worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard snapshot worker stopped.")
			return
		case <-ticker.C:
			if err := w.Snapshot(ctx); err != nil {
				log.Printf("Leaderboard snapshot failed: %v", err)
			}
		}
	}
}
