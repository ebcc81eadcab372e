package services

import (
	"testing"

	"devotion-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBadgeTypesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBadgeService(db)

	require.NoError(t, svc.SeedBadgeTypes())

	var before []models.BadgeType
	require.NoError(t, db.Order("code").Find(&before).Error)
	require.Len(t, before, len(models.BadgeTriggers))

	// restart path: reseeding an already seeded table must be a no-op,
	// not a unique-index collision
	require.NoError(t, svc.SeedBadgeTypes())

	var after []models.BadgeType
	require.NoError(t, db.Order("code").Find(&after).Error)
	require.Len(t, after, len(models.BadgeTriggers))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
}

func TestAutoAwardBadgesOnStreak(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBadgeService(db)
	require.NoError(t, svc.SeedBadgeTypes())

	user := createTestUser(t, db)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("daily_login_streak", 7).Error)

	require.NoError(t, svc.AutoAwardBadges(user.ID))

	badges, err := svc.UserBadges(user.ID)
	require.NoError(t, err)

	codes := make([]string, 0, len(badges))
	for _, b := range badges {
		codes = append(codes, b["code"].(string))
	}
	assert.Contains(t, codes, "STREAK_7")
	assert.Contains(t, codes, "WELCOME")
	assert.NotContains(t, codes, "FIRST_TASK")

	// re-running never duplicates awards
	require.NoError(t, svc.AutoAwardBadges(user.ID))
	again, err := svc.UserBadges(user.ID)
	require.NoError(t, err)
	assert.Len(t, again, len(badges))
}

func TestAutoAwardBadgesLevelAndTasks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBadgeService(db)
	require.NoError(t, svc.SeedBadgeTypes())

	user := createTestUser(t, db)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"tasks_completed": 10, "level": 5}).Error)

	require.NoError(t, svc.AutoAwardBadges(user.ID))

	badges, err := svc.UserBadges(user.ID)
	require.NoError(t, err)

	codes := make([]string, 0, len(badges))
	for _, b := range badges {
		codes = append(codes, b["code"].(string))
	}
	assert.Contains(t, codes, "FIRST_TASK")
	assert.Contains(t, codes, "TASK_10")
	assert.Contains(t, codes, "LEVEL_5")
}
