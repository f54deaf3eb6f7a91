package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pool-league-system/engine"
	"pool-league-system/handlers"
	"pool-league-system/middleware"
	"pool-league-system/models"
	"pool-league-system/services"
	"pool-league-system/utils"
	"pool-league-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // avatars only, 10MB is plenty
	})

	// 🔐 GLOBAL: only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Println("⚠️  Avatar storage disabled:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Challenge{},
		&models.Match{},
		&models.Ranking{},
		&models.Transaction{},
		&models.Activity{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	notifier, err := services.NewNotifier()
	if err != nil {
		log.Fatal("failed to connect realtime notifier:", err)
	}
	defer notifier.Close()

	activityService := services.NewActivityService(db)
	challengeService := services.NewChallengeService(db, activityService, notifier)
	matchService := services.NewMatchService(db, activityService, notifier)
	rankingService := services.NewRankingService(db, activityService, notifier)
	treasuryService := services.NewTreasuryService(db, activityService, notifier)
	playerService := services.NewPlayerService(db, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Profile mirror: ratings/robustness are owned by the profile service.
	syncClient := workers.NewPlayerSyncClient(db)
	go workers.PollPlayers(ctx, syncClient, 30*time.Second, func() {
		notifier.Invalidate(engine.PlayerInvalidations...)
	})

	// Out-of-band challenge expiry; list reads also sweep.
	challengeService.StartExpirySweeper()

	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupLeagueRoutes(app, rankingService, treasuryService, activityService, playerService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Challenge expiry sweeper running (every 1m)")
	log.Println("✅ Player profile sync running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
