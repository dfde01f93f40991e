package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	"github.com/bareera786/ai-trading-bot-sub001/internal/cache"
	"github.com/bareera786/ai-trading-bot-sub001/internal/config"
	"github.com/bareera786/ai-trading-bot-sub001/internal/db"
	"github.com/bareera786/ai-trading-bot-sub001/internal/engine"
	"github.com/bareera786/ai-trading-bot-sub001/internal/handler"
	"github.com/bareera786/ai-trading-bot-sub001/internal/middleware"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
	"github.com/bareera786/ai-trading-bot-sub001/internal/repository"
	"github.com/bareera786/ai-trading-bot-sub001/internal/router"
	"github.com/bareera786/ai-trading-bot-sub001/internal/service"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Auth components
	userRepo := repository.NewUserRepository(gormDB)
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewJWTService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitSweepTick)
	defer limiter.Stop()

	// Services
	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher, cacheClient)

	// The real engine lives out of process; the stub stands in until its
	// endpoint is configured.
	botEngine := engine.NewStub("hold")

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	botHandler := handler.NewBotHandler(botEngine)

	router.Register(e, cfg, limiter, tokens, authHandler, userHandler, botHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
