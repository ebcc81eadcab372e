package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"devotion-platform/config"
	"devotion-platform/handlers"
	"devotion-platform/middleware"
	"devotion-platform/models"
	"devotion-platform/services"
	"devotion-platform/utils"
	"devotion-platform/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration:", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // 25MB — image uploads only
	})

	allowedOriginsList := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	middleware.Harden(app, int(cfg.RateLimitMax))

	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey,
	// which the reward engine relies on for completion idempotency.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	mediaEnabled, err := utils.InitR2(cfg)
	if err != nil {
		log.Fatal("failed to initialize media storage:", err)
	}
	if !mediaEnabled {
		log.Println("Media bucket not configured — storing uploads on local disk")
		utils.SetUploadRoot(cfg.UploadDir)
		if err := utils.EnsureUploadDir(); err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
	}

	rewardService := services.NewRewardService(db, cfg)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db, rewardService)
	storyService := services.NewStoryService(db, rewardService)
	contentService := services.NewContentService(db)
	badgeService := services.NewBadgeService(db)

	if err := badgeService.SeedBadgeTypes(); err != nil {
		log.Fatal("failed to seed badge types:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshotter := workers.NewLeaderboardSnapshotter(db)
	go workers.PollLeaderboard(ctx, snapshotter, 60*time.Second)

	storyService.StartFeaturedScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupUserRoutes(app, userService, cfg)
	handlers.SetupTaskRoutes(app, taskService, cfg)
	handlers.SetupStoryRoutes(app, storyService, cfg)
	handlers.SetupContentRoutes(app, contentService, cfg)
	handlers.SetupCoinRoutes(app, rewardService, cfg)
	handlers.SetupBadgeRoutes(app, badgeService, cfg)

	app.Static("/uploads", cfg.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Devotion Platform API",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"auth":    "/api/auth",
				"users":   "/api/users",
				"stories": "/api/stories",
				"tasks":   "/api/tasks",
				"coins":   "/api/coins",
				"content": "/api/content",
				"badges":  "/api/badges",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	go func() {
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", cfg.ServerPort)
	log.Println("Leaderboard snapshot worker running (every 60s)")
	log.Printf("CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
