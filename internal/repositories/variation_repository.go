package repositories

import (
	"errors"

	"coffeezone_backend/internal/models"

	"gorm.io/gorm"
)

type VariationRepository interface {
	ListActive(db *gorm.DB) ([]models.CarcassDesignCombination, error)
	ListByCarcass(db *gorm.DB, carcassID int) ([]models.CarcassDesignCombination, error)
	FindByID(db *gorm.DB, id int) (*models.CarcassDesignCombination, error)
	FindDuplicate(db *gorm.DB, carcassID, carcassColorID, designColorID, excludeID int) (*models.CarcassDesignCombination, error)
	Create(db *gorm.DB, variation *models.CarcassDesignCombination) error
	Save(db *gorm.DB, variation *models.CarcassDesignCombination) error
	Delete(db *gorm.DB, id int) error
	// SetDefault выставляет is_default ровно у одной вариации каркаса
	SetDefault(db *gorm.DB, carcassID, variationID int) error
	CountByCarcass(db *gorm.DB, carcassID int) (int64, error)
	CountByCarcassColor(db *gorm.DB, carcassColorID int) (int64, error)
	CountByDesignColor(db *gorm.DB, designColorID int) (int64, error)
}

type variationRepository struct{}

func NewVariationRepository() VariationRepository {
	return &variationRepository{}
}

func (r *variationRepository) ListActive(db *gorm.DB) ([]models.CarcassDesignCombination, error) {
	var variations []models.CarcassDesignCombination
	err := db.Preload("CarcassColor").Preload("DesignColor").
		Where("active = ?", true).Order("id").Find(&variations).Error
	return variations, err
}

func (r *variationRepository) ListByCarcass(db *gorm.DB, carcassID int) ([]models.CarcassDesignCombination, error) {
	var variations []models.CarcassDesignCombination
	err := db.Preload("CarcassColor").Preload("DesignColor").
		Where("carcass_id = ?", carcassID).Order("id").Find(&variations).Error
	return variations, err
}

func (r *variationRepository) FindByID(db *gorm.DB, id int) (*models.CarcassDesignCombination, error) {
	var variation models.CarcassDesignCombination
	err := db.Preload("Carcass").Preload("CarcassColor").Preload("DesignColor").
		First(&variation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &variation, nil
}

func (r *variationRepository) FindDuplicate(db *gorm.DB, carcassID, carcassColorID, designColorID, excludeID int) (*models.CarcassDesignCombination, error) {
	var variation models.CarcassDesignCombination
	err := db.Where(
		"carcass_id = ? AND carcass_color_id = ? AND design_color_id = ? AND id <> ?",
		carcassID, carcassColorID, designColorID, excludeID,
	).First(&variation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &variation, nil
}

func (r *variationRepository) Create(db *gorm.DB, variation *models.CarcassDesignCombination) error {
	return db.Create(variation).Error
}

func (r *variationRepository) Save(db *gorm.DB, variation *models.CarcassDesignCombination) error {
	return db.Save(variation).Error
}

func (r *variationRepository) Delete(db *gorm.DB, id int) error {
	result := db.Delete(&models.CarcassDesignCombination{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefault сбрасывает is_default у всех вариаций каркаса и
// выставляет его только у выбранной. Вызывается внутри транзакции.
func (r *variationRepository) SetDefault(db *gorm.DB, carcassID, variationID int) error {
	if err := db.Model(&models.CarcassDesignCombination{}).
		Where("carcass_id = ? AND id <> ?", carcassID, variationID).
		Update("is_default", false).Error; err != nil {
		return err
	}
	return db.Model(&models.CarcassDesignCombination{}).
		Where("carcass_id = ? AND id = ?", carcassID, variationID).
		Update("is_default", true).Error
}

func (r *variationRepository) CountByCarcass(db *gorm.DB, carcassID int) (int64, error) {
	return CountWhere[models.CarcassDesignCombination](db, "carcass_id = ?", carcassID)
}

func (r *variationRepository) CountByCarcassColor(db *gorm.DB, carcassColorID int) (int64, error) {
	return CountWhere[models.CarcassDesignCombination](db, "carcass_color_id = ?", carcassColorID)
}

func (r *variationRepository) CountByDesignColor(db *gorm.DB, designColorID int) (int64, error) {
	return CountWhere[models.CarcassDesignCombination](db, "design_color_id = ?", designColorID)
}
