package services

import (
	"testing"

	"coffeezone_backend/internal/database"
	"coffeezone_backend/internal/models"
	"coffeezone_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// catalogFixture - минимальный набор словарей для тестов сервисов
type catalogFixture struct {
	machine      models.CoffeeMachine
	fridge       models.Fridge
	carcass      models.Carcass
	terminal     models.Terminal
	carcassColor models.CarcassColor
	designColor  models.DesignColor
}

func seedCatalog(t *testing.T, db *gorm.DB) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		machine: models.CoffeeMachine{
			CatalogItem: models.CatalogItem{
				Name:             "Jetinno JL300",
				Specs:            "Зерновой кофе\nСенсорный экран",
				Price:            850000,
				MainImageURL:     "/uploads/machine.png",
				GalleryImageURLs: models.GalleryFromStrings([]string{"/uploads/machine-side.png"}),
				Active:           true,
			},
			ShortTitle: "JL300",
		},
		fridge: models.Fridge{
			CatalogItem: models.CatalogItem{
				Name:             "Молочный холодильник",
				Price:            120000,
				GalleryImageURLs: models.GalleryFromStrings(nil),
				Active:           true,
			},
		},
		carcass: models.Carcass{
			CatalogItem: models.CatalogItem{
				Name:             "Каркас Стандарт",
				Price:            300000,
				GalleryImageURLs: models.GalleryFromStrings(nil),
				Active:           true,
			},
		},
		terminal: models.Terminal{
			CatalogItem: models.CatalogItem{
				Name:             "Платежный терминал",
				Price:            90000,
				GalleryImageURLs: models.GalleryFromStrings(nil),
				Active:           true,
			},
		},
		carcassColor: models.CarcassColor{
			ColorItem: models.ColorItem{
				Name:             "Белый",
				PriceDelta:       0,
				GalleryImageURLs: models.GalleryFromStrings(nil),
				Active:           true,
			},
		},
		designColor: models.DesignColor{
			ColorItem: models.ColorItem{
				Name:             "Графит",
				PriceDelta:       15000,
				GalleryImageURLs: models.GalleryFromStrings(nil),
				Active:           true,
			},
		},
	}

	require.NoError(t, db.Create(&f.machine).Error)
	require.NoError(t, db.Create(&f.fridge).Error)
	require.NoError(t, db.Create(&f.carcass).Error)
	require.NoError(t, db.Create(&f.terminal).Error)
	require.NoError(t, db.Create(&f.carcassColor).Error)
	require.NoError(t, db.Create(&f.designColor).Error)

	return f
}

func seedVariation(t *testing.T, db *gorm.DB, f *catalogFixture) *models.CarcassDesignCombination {
	t.Helper()

	variation := &models.CarcassDesignCombination{
		CarcassID:        f.carcass.ID,
		CarcassColorID:   f.carcassColor.ID,
		DesignColorID:    f.designColor.ID,
		Name:             "Стандарт: Белый / Графит",
		MainImageURL:     "/uploads/variation.png",
		GalleryImageURLs: models.GalleryFromStrings(nil),
		Active:           true,
	}
	require.NoError(t, db.Create(variation).Error)
	return variation
}

func requireAppErrorCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}
