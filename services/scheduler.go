package services

import (
	"log"
	"time"

	"devotion-platform/models"

	"github.com/go-co-op/gocron/v2"
)

// StartFeaturedScheduler rotates the featured flag onto the most-liked
// approved stories once an hour.
func (s *StoryService) StartFeaturedScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			var ids []string
			err := s.DB.Table("stories").
				Select("stories.id").
				Joins("LEFT JOIN story_likes ON story_likes.story_id = stories.id").
				Where("stories.status = ? AND stories.deleted_at IS NULL", models.StoryStatusApproved).
				Group("stories.id").
				Order("COUNT(story_likes.id) DESC, MAX(stories.created_at) DESC").
				Limit(5).
				Scan(&ids).Error
			if err != nil {
				log.Printf("[Scheduler] DB error selecting featured stories: %v", err)
				return
			}
			if len(ids) == 0 {
				return
			}

			if err := s.DB.Model(&models.Story{}).
				Where("featured = ? AND id NOT IN ?", true, ids).
				Update("featured", false).Error; err != nil {
				log.Printf("[Scheduler] Failed to clear featured flags: %v", err)
				return
			}
			if err := s.DB.Model(&models.Story{}).
				Where("id IN ?", ids).
				Update("featured", true).Error; err != nil {
				log.Printf("[Scheduler] Failed to set featured flags: %v", err)
				return
			}
			log.Printf("[Scheduler] Featured stories rotated (%d stories)", len(ids))
		}),
	)
}
