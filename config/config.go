package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the services need, loaded once at startup.
// Reward amounts live here instead of being read from the environment at
// grant time, so tests and handlers share one source of truth.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	JWTSecret      string
	AllowedOrigins string

	// Reward tuning
	StartingCoins    int64
	DailyLoginCoins  int64
	StorySubmitCoins int64

	// HTTP hardening and local media storage
	RateLimitMax int64
	UploadDir    string

	// R2/S3 media storage (optional — local uploads dir is the fallback)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2Bucket          string
	CDNBaseURL        string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		StartingCoins:    getEnvInt64("STARTING_COINS", 100),
		DailyLoginCoins:  getEnvInt64("DAILY_LOGIN_COINS", 10),
		StorySubmitCoins: getEnvInt64("STORY_SUBMIT_COINS", 50),

		RateLimitMax: getEnvInt64("RATE_LIMIT_MAX", 100),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),

		R2AccountID:       getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2Bucket:          getEnv("R2_BUCKET_NAME", ""),
		CDNBaseURL:        getEnv("CDN_BASE_URL", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		log.Printf("Invalid value for %s (%q), using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
