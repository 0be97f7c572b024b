package app

import (
	"fmt"
	"log/slog"

	"coffeezone_backend/internal/config"
	"coffeezone_backend/internal/database"
	"coffeezone_backend/internal/handlers"
	"coffeezone_backend/internal/logger"
	"coffeezone_backend/internal/middleware"
	"coffeezone_backend/internal/routes"
	"coffeezone_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter собирает gin-роутер со всеми слоями приложения.
// Вынесен отдельно от Run, чтобы тесты могли поднять роутер
// на собственной БД.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewStorage(storage.Config{
		BasePath:  cfg.Uploads.Dir,
		URLPrefix: cfg.Uploads.URLPrefix,
	})
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))

	appHandlers := handlers.NewAppHandlers(cfg, store)
	routes.SetupRoutes(router, cfg, appHandlers, cfg.Uploads.Dir)

	return router, nil
}

// Run запускает HTTP-сервер каталога
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	router, err := SetupRouter(cfg, db)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		slog.String("addr", addr),
		slog.String("env", cfg.Server.Env),
	)
	return router.Run(addr)
}
