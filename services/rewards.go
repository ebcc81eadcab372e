package services

import (
	"errors"
	"log"
	"time"

	"devotion-platform/config"
	"devotion-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTaskAlreadyCompleted reports a repeat completion attempt — a declined
// operation, not a fault. No state changes when it is returned.
var ErrTaskAlreadyCompleted = errors.New("task already completed")

// ExperiencePerLevel: level = experience/1000 + 1, floor division.
const ExperiencePerLevel = 1000

func levelForExperience(experience int64) int {
	if experience < 0 {
		return 1
	}
	return int(experience/ExperiencePerLevel) + 1
}

// NormalizeDate strips the time-of-day so two events on the same calendar
// day compare equal regardless of wall clock.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nextStreak evaluates the login-streak policy against the stored watermark.
// Both inputs must already be midnight-normalized. The streak never drops to
// zero here: a broken streak restarts at 1.
func nextStreak(current int, last *time.Time, today time.Time) (int, bool) {
	if last == nil {
		return 1, true
	}
	diffDays := int(today.Sub(*last).Hours() / 24)
	switch {
	case diffDays == 1:
		return current + 1, true
	case diffDays > 1:
		return 1, true
	default:
		// same day (or a clock running backwards): already claimed
		return current, false
	}
}

type RewardService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewRewardService(db *gorm.DB, cfg *config.Config) *RewardService {
	return &RewardService{DB: db, Cfg: cfg}
}

// GrantReward adds amount to both coins and experience, then raises the
// level if the new experience total crosses a 1000-point boundary. Returns
// the new coin total.
func (s *RewardService) GrantReward(userID string, amount int64, reason string) (int64, error) {
	var newCoins int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		newCoins, err = s.grantRewardTx(tx, userID, amount, reason)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newCoins, nil
}

// grantRewardTx is the in-transaction grant used by every reward path.
// Increments are expressed in SQL so concurrent grants to the same user
// commute; the level recompute reads the post-increment experience.
func (s *RewardService) grantRewardTx(tx *gorm.DB, userID string, amount int64, reason string) (int64, error) {
	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"coins":      gorm.Expr("coins + ?", amount),
		"experience": gorm.Expr("experience + ?", amount),
	})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return 0, err
	}

	// Level never decreases; the guard also keeps a concurrent higher
	// recompute from being overwritten with a lower one.
	if newLevel := levelForExperience(user.Experience); newLevel > user.Level {
		if err := tx.Model(&models.User{}).
			Where("id = ? AND level < ?", userID, newLevel).
			Update("level", newLevel).Error; err != nil {
			return 0, err
		}
		user.Level = newLevel
	}

	badgeSvc := NewBadgeService(tx)
	_ = badgeSvc.AutoAwardBadges(userID) // fire-and-forget

	log.Printf("Coins granted: %s +%d → coins=%d, xp=%d, lvl=%d (reason: %s)",
		userID, amount, user.Coins, user.Experience, user.Level, reason)

	return user.Coins, nil
}

// EvaluateLoginStreak applies the daily-login policy for today and grants
// the login reward when this is the first evaluation of the calendar day.
// The watermark update is conditional on the previously observed
// last_login_date; the loser of a concurrent race sees zero rows updated
// and reports the reward as already claimed.
func (s *RewardService) EvaluateLoginStreak(userID string, today time.Time) (int, bool, error) {
	today = NormalizeDate(today)

	var streak int
	var granted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		next, grant := nextStreak(user.DailyLoginStreak, user.LastLoginDate, today)
		streak = next
		if !grant {
			return nil
		}

		cond := tx.Model(&models.User{}).Where("id = ?", userID)
		if user.LastLoginDate == nil {
			cond = cond.Where("last_login_date IS NULL")
		} else {
			cond = cond.Where("last_login_date = ?", *user.LastLoginDate)
		}
		res := cond.Updates(map[string]interface{}{
			"daily_login_streak": next,
			"last_login_date":    today,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race to another login event; report current state
			var fresh models.User
			if err := tx.First(&fresh, "id = ?", userID).Error; err != nil {
				return err
			}
			streak = fresh.DailyLoginStreak
			return nil
		}

		if _, err := s.grantRewardTx(tx, userID, s.Cfg.DailyLoginCoins, "Daily Login"); err != nil {
			return err
		}
		granted = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return streak, granted, nil
}

// CompleteTask appends the user to the task's completion set and pays the
// task reward. The composite unique index on (task_id, user_id) makes the
// membership check and the append one atomic step: a duplicate insert is
// the "already completed" outcome and nothing else is written.
func (s *RewardService) CompleteTask(taskID, userID, proof string) (int64, error) {
	var coinsEarned int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			return err
		}

		completion := models.TaskCompletion{
			ID:     uuid.NewString(),
			TaskID: task.ID,
			UserID: userID,
			Proof:  proof,
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTaskAlreadyCompleted
			}
			return err
		}

		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
			Update("total_completions", gorm.Expr("total_completions + 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("tasks_completed", gorm.Expr("tasks_completed + 1")).Error; err != nil {
			return err
		}

		if _, err := s.grantRewardTx(tx, userID, task.CoinsReward, "Task Completed: "+task.Title); err != nil {
			return err
		}
		coinsEarned = task.CoinsReward
		return nil
	})
	if err != nil {
		return 0, err
	}
	return coinsEarned, nil
}

// ApproveStory moves the story to approved and pays the author's
// submission reward at most once. The status write is idempotent; the
// payout is gated solely by the conditional coins_awarded flip, so a
// repeat approval call can never pay twice.
func (s *RewardService) ApproveStory(storyID string) (*models.Story, bool, error) {
	var story models.Story
	var alreadyAwarded bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&story, "id = ?", storyID).Error; err != nil {
			return err
		}

		if story.Status != models.StoryStatusApproved {
			if err := tx.Model(&models.Story{}).Where("id = ?", story.ID).
				Update("status", models.StoryStatusApproved).Error; err != nil {
				return err
			}
			story.Status = models.StoryStatusApproved
		}

		res := tx.Model(&models.Story{}).
			Where("id = ? AND coins_awarded = ?", story.ID, false).
			Update("coins_awarded", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			alreadyAwarded = true
			story.CoinsAwarded = true
			return nil
		}
		story.CoinsAwarded = true

		if err := tx.Model(&models.User{}).Where("id = ?", story.AuthorID).
			Update("stories_approved", gorm.Expr("stories_approved + 1")).Error; err != nil {
			return err
		}
		_, err := s.grantRewardTx(tx, story.AuthorID, s.Cfg.StorySubmitCoins, "Story Approved")
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return &story, alreadyAwarded, nil
}
