package handlers

import (
	"coffeezone_backend/internal/config"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services"
	"coffeezone_backend/internal/storage"
)

// AppHandlers - собранный набор обработчиков приложения
type AppHandlers struct {
	Meta      *MetaHandler
	Bundles   *BundleHandler
	Auth      *AdminAuthHandler
	Catalog   *AdminCatalogHandler
	Variation *AdminVariationHandler
	AdminBndl *AdminBundleHandler
	Upload    *AdminUploadHandler
	Excel     *AdminExcelHandler
}

// NewAppHandlers связывает репозитории, сервисы и обработчики
func NewAppHandlers(cfg *config.Config, store storage.Storage) *AppHandlers {
	variationRepo := repositories.NewVariationRepository()
	bundleRepo := repositories.NewBundleRepository()

	metaService := services.NewMetaService(variationRepo)
	bundleService := services.NewBundleService(bundleRepo, variationRepo)
	catalogService := services.NewCatalogService(variationRepo, bundleRepo)
	variationService := services.NewVariationService(variationRepo, bundleRepo)
	authService := services.NewAuthService(cfg)
	uploadService := services.NewUploadService(store, cfg.Uploads.MaxSize, cfg.Uploads.Allowed)
	excelService := services.NewExcelService()

	return &AppHandlers{
		Meta:      NewMetaHandler(metaService),
		Bundles:   NewBundleHandler(bundleService),
		Auth:      NewAdminAuthHandler(authService),
		Catalog:   NewAdminCatalogHandler(catalogService, uploadService),
		Variation: NewAdminVariationHandler(variationService, uploadService),
		AdminBndl: NewAdminBundleHandler(bundleService),
		Upload:    NewAdminUploadHandler(uploadService),
		Excel:     NewAdminExcelHandler(excelService),
	}
}
