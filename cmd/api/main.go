package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnector-backend/config"
	v1 "devconnector-backend/internal/delivery/http/v1"
	"devconnector-backend/internal/repository/postgres"
	"devconnector-backend/internal/usecase"
	"devconnector-backend/pkg/database"
	"devconnector-backend/pkg/github"
	"devconnector-backend/pkg/logger"
	"devconnector-backend/pkg/redis"
	"devconnector-backend/pkg/token"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting devconnector backend", "port", cfg.Port)

	// 3. Setup Database
	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, login rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// 6. Setup Token Service and UseCases
	tokens := token.NewService(cfg.JWTSecret, token.DefaultTTL)
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	userUC := usecase.NewUserUsecase(userRepo, tokens)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo)
	githubClient := github.NewClient(cfg.GithubAPIURL, cfg.GithubToken)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		ProfileUC: profileUC,
		GithubUC:  githubClient,
		Tokens:    tokens,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
