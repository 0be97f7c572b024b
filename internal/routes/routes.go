package routes

import (
	"net/http"

	"coffeezone_backend/internal/config"
	"coffeezone_backend/internal/handlers"
	"coffeezone_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes настраивает все маршруты приложения.
// Публичный /api закрыт проверкой Origin/Referer, админский
// /api/v1/admin (кроме /login) закрыт JWT.
func SetupRoutes(router *gin.Engine, cfg *config.Config, h *handlers.AppHandlers, uploadsDir string) {
	router.Use(middleware.CORSMiddleware(cfg.API.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Статика загруженных изображений
	router.Static(cfg.Uploads.URLPrefix, uploadsDir)

	api := router.Group("/api")
	api.Use(middleware.TrustedOriginMiddleware(cfg.API.AllowedOrigins, "/api"))
	{
		api.GET("/meta", h.Meta.GetMeta)
		api.GET("/bundles", h.Bundles.GetBundles)
		api.GET("/preview", h.Bundles.GetPreview)
		h.Meta.RegisterDictionaries(api)
	}

	admin := router.Group("/api/v1/admin")
	admin.POST("/login", h.Auth.Login)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware(cfg.JWT.Secret))
	{
		h.Catalog.Register(protected)
		h.Variation.Register(protected)
		h.AdminBndl.Register(protected)
		h.Excel.Register(protected)
		protected.POST("/upload", h.Upload.Upload)
	}
}
