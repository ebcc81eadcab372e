package services

import (
	"fmt"
	"testing"
	"time"

	"devotion-platform/config"
	"devotion-platform/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one shared in-memory DB per test, isolated by name
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskCompletion{},
		&models.Story{},
		&models.StoryLike{},
		&models.StoryComment{},
		&models.Content{},
		&models.ContentLike{},
		&models.ContentBookmark{},
		&models.BadgeType{},
		&models.UserBadge{},
		&models.LeaderboardEntry{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		StartingCoins:    100,
		DailyLoginCoins:  10,
		StorySubmitCoins: 50,
	}
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Name:     "Test Devotee",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
		IsActive: true,
		Coins:    100,
		Level:    1,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestTask(t *testing.T, db *gorm.DB, title string, reward int64) models.Task {
	t.Helper()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        uuid.NewString(),
		Description: "A devotional task",
		Category:    "Daily Puja",
		CoinsReward: reward,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func reloadUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return user
}

func TestLevelForExperience(t *testing.T) {
	assert.Equal(t, 1, levelForExperience(0))
	assert.Equal(t, 1, levelForExperience(999))
	assert.Equal(t, 2, levelForExperience(1000))
	assert.Equal(t, 2, levelForExperience(1050))
	assert.Equal(t, 3, levelForExperience(2000))
	assert.Equal(t, 11, levelForExperience(10500))
}

func TestNextStreak(t *testing.T) {
	today := NormalizeDate(time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC))
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	streak, grant := nextStreak(0, nil, today)
	assert.Equal(t, 1, streak)
	assert.True(t, grant)

	streak, grant = nextStreak(3, &yesterday, today)
	assert.Equal(t, 4, streak)
	assert.True(t, grant)

	streak, grant = nextStreak(5, &threeDaysAgo, today)
	assert.Equal(t, 1, streak)
	assert.True(t, grant)

	streak, grant = nextStreak(2, &today, today)
	assert.Equal(t, 2, streak)
	assert.False(t, grant)
}

func TestNormalizeDate(t *testing.T) {
	morning := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, NormalizeDate(morning), NormalizeDate(evening))
	assert.Equal(t, 0, NormalizeDate(morning).Hour())
}

func TestGrantRewardIncrementsCoinsAndExperience(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)

	newCoins, err := svc.GrantReward(user.ID, 50, "test grant")
	require.NoError(t, err)
	assert.Equal(t, int64(150), newCoins)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, int64(150), fresh.Coins)
	assert.Equal(t, int64(50), fresh.Experience)
	assert.Equal(t, 1, fresh.Level)
}

func TestGrantRewardLevelsUpAtBoundary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("experience", 950).Error)

	_, err := svc.GrantReward(user.ID, 100, "boundary grant")
	require.NoError(t, err)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, int64(1050), fresh.Experience)
	assert.Equal(t, 2, fresh.Level)
}

func TestGrantRewardLevelNeverDecreases(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)

	lastLevel := 1
	for i := 0; i < 8; i++ {
		_, err := svc.GrantReward(user.ID, 400, "sequence grant")
		require.NoError(t, err)
		fresh := reloadUser(t, db, user.ID)
		assert.GreaterOrEqual(t, fresh.Level, lastLevel)
		lastLevel = fresh.Level
	}
	assert.Equal(t, 4, lastLevel) // 3200 xp → level 4
}

func TestGrantRewardUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())

	_, err := svc.GrantReward(uuid.NewString(), 10, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEvaluateLoginStreakFirstEver(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)
	today := time.Date(2025, 6, 10, 9, 15, 0, 0, time.UTC)

	streak, granted, err := svc.EvaluateLoginStreak(user.ID, today)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.True(t, granted)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, int64(110), fresh.Coins)
	assert.Equal(t, int64(10), fresh.Experience)
	require.NotNil(t, fresh.LastLoginDate)
	assert.Equal(t, NormalizeDate(today), NormalizeDate(*fresh.LastLoginDate))
}

func TestEvaluateLoginStreakSameDayGrantsOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)
	morning := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC)

	_, granted, err := svc.EvaluateLoginStreak(user.ID, morning)
	require.NoError(t, err)
	assert.True(t, granted)

	streak, granted, err := svc.EvaluateLoginStreak(user.ID, evening)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Equal(t, 1, streak)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, int64(110), fresh.Coins)
}

func TestEvaluateLoginStreakConsecutiveDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)

	dayOne := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	_, _, err := svc.EvaluateLoginStreak(user.ID, dayOne)
	require.NoError(t, err)

	streak, granted, err := svc.EvaluateLoginStreak(user.ID, dayOne.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 2, streak)
}

func TestEvaluateLoginStreakBrokenResetsToOne(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)

	dayOne := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	_, _, err := svc.EvaluateLoginStreak(user.ID, dayOne)
	require.NoError(t, err)
	_, _, err = svc.EvaluateLoginStreak(user.ID, dayOne.AddDate(0, 0, 1))
	require.NoError(t, err)

	streak, granted, err := svc.EvaluateLoginStreak(user.ID, dayOne.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, streak)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 1, fresh.DailyLoginStreak)
	assert.Equal(t, int64(130), fresh.Coins) // three grants total
}

func TestCompleteTaskPaysOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)
	task := createTestTask(t, db, "Morning Aarti", 50)

	coinsEarned, err := svc.CompleteTask(task.ID, user.ID, "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(50), coinsEarned)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, int64(150), fresh.Coins)
	assert.Equal(t, int64(50), fresh.Experience)
	assert.Equal(t, int64(1), fresh.TasksCompleted)

	var freshTask models.Task
	require.NoError(t, db.First(&freshTask, "id = ?", task.ID).Error)
	assert.Equal(t, int64(1), freshTask.TotalCompletions)

	// second completion is declined with no state change
	_, err = svc.CompleteTask(task.ID, user.ID, "photo2.jpg")
	assert.ErrorIs(t, err, ErrTaskAlreadyCompleted)

	fresh = reloadUser(t, db, user.ID)
	assert.Equal(t, int64(150), fresh.Coins)
	require.NoError(t, db.First(&freshTask, "id = ?", task.ID).Error)
	assert.Equal(t, int64(1), freshTask.TotalCompletions)
}

func TestCompleteTaskDifferentUsersBothPaid(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	task := createTestTask(t, db, "Read one chapter", 20)

	_, err := svc.CompleteTask(task.ID, alice.ID, "")
	require.NoError(t, err)
	_, err = svc.CompleteTask(task.ID, bob.ID, "")
	require.NoError(t, err)

	assert.Equal(t, int64(120), reloadUser(t, db, alice.ID).Coins)
	assert.Equal(t, int64(120), reloadUser(t, db, bob.ID).Coins)

	var freshTask models.Task
	require.NoError(t, db.First(&freshTask, "id = ?", task.ID).Error)
	assert.Equal(t, int64(2), freshTask.TotalCompletions)
}

func TestCompleteTaskNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)

	_, err := svc.CompleteTask(uuid.NewString(), user.ID, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func createTestStory(t *testing.T, db *gorm.DB, authorID string) models.Story {
	t.Helper()
	story := models.Story{
		ID:       uuid.NewString(),
		Title:    "The Devotion of Hanuman",
		Slug:     "the-devotion-of-hanuman",
		Content:  "A story of unwavering devotion told across generations of seekers.",
		Category: "Ramayana",
		AuthorID: authorID,
		Status:   models.StoryStatusPending,
	}
	require.NoError(t, db.Create(&story).Error)
	return story
}

func TestApproveStoryPaysAuthorOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	author := createTestUser(t, db)
	story := createTestStory(t, db, author.ID)

	approved, alreadyAwarded, err := svc.ApproveStory(story.ID)
	require.NoError(t, err)
	assert.False(t, alreadyAwarded)
	assert.Equal(t, models.StoryStatusApproved, approved.Status)
	assert.True(t, approved.CoinsAwarded)

	fresh := reloadUser(t, db, author.ID)
	assert.Equal(t, int64(150), fresh.Coins)
	assert.Equal(t, int64(1), fresh.StoriesApproved)

	// repeat approval: status stays approved, no second payout
	approved, alreadyAwarded, err = svc.ApproveStory(story.ID)
	require.NoError(t, err)
	assert.True(t, alreadyAwarded)
	assert.True(t, approved.CoinsAwarded)

	fresh = reloadUser(t, db, author.ID)
	assert.Equal(t, int64(150), fresh.Coins)
	assert.Equal(t, int64(1), fresh.StoriesApproved)
}

func TestApproveStoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())

	_, _, err := svc.ApproveStory(uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Full walkthrough: task, first login, story approval, repeat approval.
func TestRewardProgressionScenario(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db, testConfig())
	user := createTestUser(t, db)
	task := createTestTask(t, db, "Evening Meditation", 50)
	story := createTestStory(t, db, user.ID)

	coinsEarned, err := svc.CompleteTask(task.ID, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(50), coinsEarned)
	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, int64(150), fresh.Coins)
	assert.Equal(t, int64(50), fresh.Experience)
	assert.Equal(t, 1, fresh.Level)

	streak, granted, err := svc.EvaluateLoginStreak(user.ID, time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, streak)
	fresh = reloadUser(t, db, user.ID)
	assert.Equal(t, int64(160), fresh.Coins)
	assert.Equal(t, int64(60), fresh.Experience)

	_, alreadyAwarded, err := svc.ApproveStory(story.ID)
	require.NoError(t, err)
	assert.False(t, alreadyAwarded)
	fresh = reloadUser(t, db, user.ID)
	assert.Equal(t, int64(210), fresh.Coins)
	assert.Equal(t, int64(110), fresh.Experience)

	_, alreadyAwarded, err = svc.ApproveStory(story.ID)
	require.NoError(t, err)
	assert.True(t, alreadyAwarded)
	assert.Equal(t, int64(210), reloadUser(t, db, user.ID).Coins)
}
