package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"esports-tournament-system/config"
	"esports-tournament-system/handlers"
	"esports-tournament-system/models"
	"esports-tournament-system/repository"
	"esports-tournament-system/services"
	"esports-tournament-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // banner uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Tournament{},
		&models.Registration{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if cfg.StorageEnabled {
		if err := utils.InitStorage(); err != nil {
			log.Fatal("failed to initialize object storage:", err)
		}
	} else {
		log.Println("S3_BUCKET not set, banner uploads disabled")
	}

	store := repository.NewGormStore(db)
	authService := services.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL)
	tournamentService := services.NewTournamentService(store)
	registrationService := services.NewRegistrationService(store)
	teamService := services.NewTeamService(store)

	handlers.SetupAuthRoutes(app, authService, cfg.JWTSecret)
	handlers.SetupTournamentRoutes(app, tournamentService, cfg.JWTSecret)
	handlers.SetupRegistrationRoutes(app, registrationService, cfg.JWTSecret)
	handlers.SetupTeamRoutes(app, teamService, cfg.JWTSecret)

	tournamentService.StartLifecycleSweep()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	log.Printf("server running on http://localhost:%s", cfg.Port)

	<-ctx.Done()
	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
