package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockfolio/internal/auth"
	"stockfolio/internal/cache"
	"stockfolio/internal/config"
	"stockfolio/internal/db"
	"stockfolio/internal/handler"
	"stockfolio/internal/market"
	"stockfolio/internal/model"
	"stockfolio/internal/repository"
	"stockfolio/internal/router"
	"stockfolio/internal/service"
	"stockfolio/internal/view"
)

func main() {
	cfg := config.Load()

	e := echo.New()

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = view.ErrorHandler

	gormDB, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)

	sessions := auth.NewSessionService(cfg.SecretKey)
	sessionStore := auth.NewSessionStore(cacheClient)

	authService := service.NewAuthService(userRepo)
	profileService := service.NewProfileService()
	provider := market.NewProvider(cfg.AlphaVantageURL, cfg.AlphaVantageKey)

	authHandler := handler.NewAuthHandler(authService, sessions, sessionStore)
	pageHandler := handler.NewPageHandler(provider, profileService)

	router.Register(e, cfg, sessions, sessionStore, userRepo, authHandler, pageHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
