package repositories

import (
	"errors"

	"coffeezone_backend/internal/models"

	"gorm.io/gorm"
)

type BundleRepository interface {
	// ListVisible возвращает комплекты, отмеченные для показа на сайте
	ListVisible(db *gorm.DB) ([]models.Bundle, error)
	List(db *gorm.DB) ([]models.Bundle, error)
	FindByID(db *gorm.DB, id int) (*models.Bundle, error)
	// FindExact ищет комплект по тройке каркас + цвета;
	// combinationID дополнительно сужает поиск, если задан
	FindExact(db *gorm.DB, carcassID, carcassColorID, designColorID int, combinationID *int) (*models.Bundle, error)
	Create(db *gorm.DB, bundle *models.Bundle) error
	Save(db *gorm.DB, bundle *models.Bundle) error
	Delete(db *gorm.DB, id int) error
	CountByVariation(db *gorm.DB, variationID int) (int64, error)
	CountByCarcass(db *gorm.DB, carcassID int) (int64, error)
	CountByCarcassColor(db *gorm.DB, carcassColorID int) (int64, error)
	CountByDesignColor(db *gorm.DB, designColorID int) (int64, error)
	CountByComponent(db *gorm.DB, column string, componentID int) (int64, error)
}

type bundleRepository struct{}

func NewBundleRepository() BundleRepository {
	return &bundleRepository{}
}

func (r *bundleRepository) ListVisible(db *gorm.DB) ([]models.Bundle, error) {
	var bundles []models.Bundle
	err := db.Where("show_on_site = ?", true).Order("id").Find(&bundles).Error
	return bundles, err
}

func (r *bundleRepository) List(db *gorm.DB) ([]models.Bundle, error) {
	var bundles []models.Bundle
	err := db.Order("id").Find(&bundles).Error
	return bundles, err
}

func (r *bundleRepository) FindByID(db *gorm.DB, id int) (*models.Bundle, error) {
	var bundle models.Bundle
	err := db.First(&bundle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *bundleRepository) FindExact(db *gorm.DB, carcassID, carcassColorID, designColorID int, combinationID *int) (*models.Bundle, error) {
	query := db.Where(
		"carcass_id = ? AND carcass_color_id = ? AND design_color_id = ?",
		carcassID, carcassColorID, designColorID,
	)
	if combinationID != nil {
		query = query.Where("carcass_design_combination_id = ?", *combinationID)
	}

	var bundle models.Bundle
	err := query.Order("id").First(&bundle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *bundleRepository) Create(db *gorm.DB, bundle *models.Bundle) error {
	return db.Create(bundle).Error
}

func (r *bundleRepository) Save(db *gorm.DB, bundle *models.Bundle) error {
	return db.Save(bundle).Error
}

func (r *bundleRepository) Delete(db *gorm.DB, id int) error {
	result := db.Delete(&models.Bundle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bundleRepository) CountByVariation(db *gorm.DB, variationID int) (int64, error) {
	return CountWhere[models.Bundle](db, "carcass_design_combination_id = ?", variationID)
}

func (r *bundleRepository) CountByCarcass(db *gorm.DB, carcassID int) (int64, error) {
	return CountWhere[models.Bundle](db, "carcass_id = ?", carcassID)
}

func (r *bundleRepository) CountByCarcassColor(db *gorm.DB, carcassColorID int) (int64, error) {
	return CountWhere[models.Bundle](db, "carcass_color_id = ?", carcassColorID)
}

func (r *bundleRepository) CountByDesignColor(db *gorm.DB, designColorID int) (int64, error) {
	return CountWhere[models.Bundle](db, "design_color_id = ?", designColorID)
}

func (r *bundleRepository) CountByComponent(db *gorm.DB, column string, componentID int) (int64, error) {
	switch column {
	case "coffee_machine_id", "fridge_id", "terminal_id":
		return CountWhere[models.Bundle](db, column+" = ?", componentID)
	default:
		return 0, errors.New("unknown component column: " + column)
	}
}
