package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, int64(100), cfg.StartingCoins)
	assert.Equal(t, int64(10), cfg.DailyLoginCoins)
	assert.Equal(t, int64(50), cfg.StorySubmitCoins)
	assert.Equal(t, int64(100), cfg.RateLimitMax)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DAILY_LOGIN_COINS", "25")
	t.Setenv("STORY_SUBMIT_COINS", "75")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(25), cfg.DailyLoginCoins)
	assert.Equal(t, int64(75), cfg.StorySubmitCoins)
}

func TestLoadConfigRejectsBadRewardValues(t *testing.T) {
	t.Setenv("DAILY_LOGIN_COINS", "not-a-number")
	t.Setenv("STARTING_COINS", "-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(10), cfg.DailyLoginCoins)
	assert.Equal(t, int64(100), cfg.StartingCoins)
}
