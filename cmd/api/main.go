package main

import (
	"context"

	"github.com/ghostlake/jobtrack/internal/config"
	"github.com/ghostlake/jobtrack/internal/database"
	"github.com/ghostlake/jobtrack/internal/handlers"
	"github.com/ghostlake/jobtrack/internal/logging"
	"github.com/ghostlake/jobtrack/internal/router"
	"github.com/ghostlake/jobtrack/internal/services"
	"github.com/ghostlake/jobtrack/internal/token"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Environment variables (.env is optional in deployed environments)
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		logging.New(0).Fatal("failed to load config", "error", err)
	}
	log := logging.New(cfg.LogLevel)

	// 2. Database connection + migrations
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}
	log.Info("database connection established")

	// 3. Core services
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if !tokens.Configured() {
		log.Warn("JWT_SECRET is not set; authenticated endpoints will answer 500")
	}
	userService := services.NewUserService(db, tokens)
	appService := services.NewApplicationService(db)

	skillService, err := services.NewSkillService(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		log.Fatal("failed to create model client", "error", err)
	}

	// 4. Handlers and router
	r := router.New(router.Deps{
		Log:    log,
		Config: cfg,
		Tokens: tokens,
		Auth:   handlers.NewAuthHandler(userService),
		Apps:   handlers.NewApplicationHandler(appService),
		AI:     handlers.NewAIHandler(skillService),
	})

	log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", "error", err)
	}
}
