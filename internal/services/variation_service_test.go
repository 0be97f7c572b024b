package services

import (
	"testing"

	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVariationService() VariationService {
	return NewVariationService(repositories.NewVariationRepository(), repositories.NewBundleRepository())
}

func TestVariationService_Create(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	service := newVariationService()

	created, err := service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: f.carcassColor.ID,
		DesignColorID:  f.designColor.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, f.carcass.ID, created.CarcassID)
	assert.NotEmpty(t, created.Code)
	// Имя собирается из названий каркаса и цветов
	assert.Contains(t, created.Name, f.carcass.Name)
	assert.Contains(t, created.Name, f.carcassColor.Name)
	assert.True(t, created.Active)
	assert.False(t, created.IsDefault)
}

func TestVariationService_Create_DuplicatePair(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	seedVariation(t, db, f)
	service := newVariationService()

	_, err := service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: f.carcassColor.ID,
		DesignColorID:  f.designColor.ID,
	})
	requireAppErrorCode(t, err, apperrors.CodeDuplicateVariation)
}

func TestVariationService_Create_RaceOnUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	service := newVariationService()

	// Соперник вставляет ту же тройку после предпроверки дубликата,
	// прямо перед вставкой сервиса. Уникальный индекс должен
	// отдаваться наружу как DUPLICATE_VARIATION, а не INTERNAL_ERROR.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_variation", func(tx *gorm.DB) {
		if raced {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.CarcassDesignCombination); !ok {
			return
		}
		raced = true
		rival := models.CarcassDesignCombination{
			CarcassID:        f.carcass.ID,
			CarcassColorID:   f.carcassColor.ID,
			DesignColorID:    f.designColor.ID,
			Name:             "Соперник",
			GalleryImageURLs: models.GalleryFromStrings(nil),
			Active:           true,
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(&rival).Error; err != nil {
			tx.AddError(err)
		}
	})
	require.NoError(t, err)

	_, err = service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: f.carcassColor.ID,
		DesignColorID:  f.designColor.ID,
	})
	requireAppErrorCode(t, err, apperrors.CodeDuplicateVariation)
}

func TestVariationService_Create_UnknownColor(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	service := newVariationService()

	_, err := service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: 999,
		DesignColorID:  f.designColor.ID,
	})
	requireAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestVariationService_SetDefault_Exclusive(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	service := newVariationService()

	secondColor := models.DesignColor{
		ColorItem: models.ColorItem{
			Name:             "Орех",
			GalleryImageURLs: models.GalleryFromStrings(nil),
			Active:           true,
		},
	}
	require.NoError(t, db.Create(&secondColor).Error)

	first, err := service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: f.carcassColor.ID,
		DesignColorID:  f.designColor.ID,
		IsDefault:      true,
	})
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: f.carcassColor.ID,
		DesignColorID:  secondColor.ID,
		IsDefault:      true,
	})
	require.NoError(t, err)
	require.True(t, second.IsDefault)

	// Первая вариация потеряла дефолт
	reloaded, err := service.Get(db, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)

	var count int64
	require.NoError(t, db.Model(&models.CarcassDesignCombination{}).
		Where("carcass_id = ? AND is_default = ?", f.carcass.ID, true).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVariationService_Delete_ReferencedByBundle(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	variation := seedVariation(t, db, f)
	service := newVariationService()

	variationID := variation.ID
	bundle := models.Bundle{
		Name:                       "Комплект Стандарт",
		CoffeeMachineID:            f.machine.ID,
		CarcassID:                  f.carcass.ID,
		CarcassColorID:             f.carcassColor.ID,
		DesignColorID:              f.designColor.ID,
		CarcassDesignCombinationID: &variationID,
		IsAvailable:                true,
		ShowOnSite:                 true,
	}
	require.NoError(t, db.Create(&bundle).Error)

	err := service.Delete(db, variation.ID)
	requireAppErrorCode(t, err, apperrors.CodeConflict)

	// После удаления комплекта вариация удаляется
	require.NoError(t, db.Delete(&bundle).Error)
	require.NoError(t, service.Delete(db, variation.ID))

	_, err = service.Get(db, variation.ID)
	requireAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestVariationService_Update_DuplicatePair(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	existing := seedVariation(t, db, f)
	service := newVariationService()

	secondColor := models.DesignColor{
		ColorItem: models.ColorItem{
			Name:             "Орех",
			GalleryImageURLs: models.GalleryFromStrings(nil),
			Active:           true,
		},
	}
	require.NoError(t, db.Create(&secondColor).Error)

	other, err := service.Create(db, f.carcass.ID, dto.VariationRequest{
		CarcassColorID: f.carcassColor.ID,
		DesignColorID:  secondColor.ID,
	})
	require.NoError(t, err)

	// Перевод второй вариации на пару первой должен быть отклонен
	_, err = service.Update(db, other.ID, dto.VariationRequest{
		CarcassColorID: existing.CarcassColorID,
		DesignColorID:  existing.DesignColorID,
	})
	requireAppErrorCode(t, err, apperrors.CodeDuplicateVariation)
}
