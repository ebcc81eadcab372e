package services

import (
	"testing"

	"devotion-platform/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func toggleStoryLike(t *testing.T, db *gorm.DB, storyID, userID string) (bool, int64) {
	t.Helper()
	liked, count, err := toggleMembership(db, &models.StoryLike{}, "story_id", storyID, userID,
		func() interface{} {
			return &models.StoryLike{ID: uuid.NewString(), StoryID: storyID, UserID: userID}
		})
	require.NoError(t, err)
	return liked, count
}

func TestToggleLikeAlternates(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	story := createTestStory(t, db, user.ID)

	liked, count := toggleStoryLike(t, db, story.ID, user.ID)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count = toggleStoryLike(t, db, story.ID, user.ID)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	liked, count = toggleStoryLike(t, db, story.ID, user.ID)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
}

func TestToggleLikeCountsAcrossUsers(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db)
	story := createTestStory(t, db, author.ID)

	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	_, count := toggleStoryLike(t, db, story.ID, alice.ID)
	assert.Equal(t, int64(1), count)
	_, count = toggleStoryLike(t, db, story.ID, bob.ID)
	assert.Equal(t, int64(2), count)

	// alice unlikes, bob's like stays
	liked, count := toggleStoryLike(t, db, story.ID, alice.ID)
	assert.False(t, liked)
	assert.Equal(t, int64(1), count)
}
