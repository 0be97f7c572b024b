package services

import (
	"fmt"

	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// VariationService управляет вариациями каркаса.
// Инварианты: пара (цвет каркаса, цвет дизайна) уникальна в пределах каркаса;
// is_default держит не более одной вариации на каркас.
type VariationService interface {
	ListByCarcass(db *gorm.DB, carcassID int) ([]dto.AdminVariationResponse, error)
	Get(db *gorm.DB, id int) (*dto.AdminVariationResponse, error)
	Create(db *gorm.DB, carcassID int, req dto.VariationRequest) (*dto.AdminVariationResponse, error)
	Update(db *gorm.DB, id int, req dto.VariationRequest) (*dto.AdminVariationResponse, error)
	Delete(db *gorm.DB, id int) error
	SetDefault(db *gorm.DB, id int) (*dto.AdminVariationResponse, error)
	AttachImage(db *gorm.DB, id int, url string, gallery bool) error
}

type variationService struct {
	variations repositories.VariationRepository
	bundles    repositories.BundleRepository
}

func NewVariationService(variations repositories.VariationRepository, bundles repositories.BundleRepository) VariationService {
	return &variationService{
		variations: variations,
		bundles:    bundles,
	}
}

func (s *variationService) ListByCarcass(db *gorm.DB, carcassID int) ([]dto.AdminVariationResponse, error) {
	if _, err := getEntity[models.Carcass](db, "carcass", carcassID); err != nil {
		return nil, err
	}
	variations, err := s.variations.ListByCarcass(db, carcassID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.AdminVariationResponse, 0, len(variations))
	for _, v := range variations {
		result = append(result, toAdminVariationResponse(&v))
	}
	return result, nil
}

func (s *variationService) Get(db *gorm.DB, id int) (*dto.AdminVariationResponse, error) {
	variation, err := s.findVariation(db, id)
	if err != nil {
		return nil, err
	}
	resp := toAdminVariationResponse(variation)
	return &resp, nil
}

func (s *variationService) Create(db *gorm.DB, carcassID int, req dto.VariationRequest) (*dto.AdminVariationResponse, error) {
	carcass, err := getEntity[models.Carcass](db, "carcass", carcassID)
	if err != nil {
		return nil, err
	}
	carcassColor, err := getEntity[models.CarcassColor](db, "carcass_color", req.CarcassColorID)
	if err != nil {
		return nil, err
	}
	designColor, err := getEntity[models.DesignColor](db, "design_color", req.DesignColorID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(db, carcassID, req.CarcassColorID, req.DesignColorID, 0); err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("%s: %s / %s", carcass.Name, carcassColor.Name, designColor.Name)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	variation := &models.CarcassDesignCombination{
		CarcassID:        carcassID,
		CarcassColorID:   req.CarcassColorID,
		DesignColorID:    req.DesignColorID,
		Name:             name,
		MainImageURL:     req.MainImageURL,
		GalleryImageURLs: models.GalleryFromStrings(req.GalleryImageURLs),
		Active:           active,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.variations.Create(tx, variation); err != nil {
			return err
		}
		if req.IsDefault {
			return s.variations.SetDefault(tx, carcassID, variation.ID)
		}
		return nil
	})
	if err != nil {
		// Гонка двух создателей: предпроверка прошла, но уникальный
		// индекс по тройке сработал на вставке
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewDuplicateVariationError(carcassID, req.CarcassColorID, req.DesignColorID)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.Get(db, variation.ID)
}

func (s *variationService) Update(db *gorm.DB, id int, req dto.VariationRequest) (*dto.AdminVariationResponse, error) {
	variation, err := s.findVariation(db, id)
	if err != nil {
		return nil, err
	}

	if req.CarcassColorID != variation.CarcassColorID {
		if _, err := getEntity[models.CarcassColor](db, "carcass_color", req.CarcassColorID); err != nil {
			return nil, err
		}
	}
	if req.DesignColorID != variation.DesignColorID {
		if _, err := getEntity[models.DesignColor](db, "design_color", req.DesignColorID); err != nil {
			return nil, err
		}
	}
	if err := s.checkDuplicate(db, variation.CarcassID, req.CarcassColorID, req.DesignColorID, id); err != nil {
		return nil, err
	}

	variation.CarcassColorID = req.CarcassColorID
	variation.DesignColorID = req.DesignColorID
	if req.Name != "" {
		variation.Name = req.Name
	}
	variation.MainImageURL = req.MainImageURL
	variation.GalleryImageURLs = models.GalleryFromStrings(req.GalleryImageURLs)
	if req.Active != nil {
		variation.Active = *req.Active
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.variations.Save(tx, variation); err != nil {
			return err
		}
		if req.IsDefault {
			return s.variations.SetDefault(tx, variation.CarcassID, variation.ID)
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewDuplicateVariationError(variation.CarcassID, req.CarcassColorID, req.DesignColorID)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.Get(db, id)
}

func (s *variationService) Delete(db *gorm.DB, id int) error {
	if _, err := s.findVariation(db, id); err != nil {
		return err
	}
	count, err := s.bundles.CountByVariation(db, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflictError("variation", "Variation is referenced by bundles")
	}
	if err := s.variations.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("variation", "Variation not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// SetDefault делает вариацию дефолтной для ее каркаса
func (s *variationService) SetDefault(db *gorm.DB, id int) (*dto.AdminVariationResponse, error) {
	variation, err := s.findVariation(db, id)
	if err != nil {
		return nil, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return s.variations.SetDefault(tx, variation.CarcassID, variation.ID)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Get(db, id)
}

func (s *variationService) AttachImage(db *gorm.DB, id int, url string, gallery bool) error {
	variation, err := s.findVariation(db, id)
	if err != nil {
		return err
	}
	if gallery {
		variation.GalleryImageURLs = models.GalleryFromStrings(append(models.ParseGallery(variation.GalleryImageURLs), url))
	} else {
		variation.MainImageURL = url
	}
	if err := s.variations.Save(db, variation); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *variationService) findVariation(db *gorm.DB, id int) (*models.CarcassDesignCombination, error) {
	variation, err := s.variations.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("variation", "Variation not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return variation, nil
}

func (s *variationService) checkDuplicate(db *gorm.DB, carcassID, carcassColorID, designColorID, excludeID int) error {
	_, err := s.variations.FindDuplicate(db, carcassID, carcassColorID, designColorID, excludeID)
	if err == nil {
		return apperrors.NewDuplicateVariationError(carcassID, carcassColorID, designColorID)
	}
	if !apperrors.Is(err, repositories.ErrNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func toAdminVariationResponse(v *models.CarcassDesignCombination) dto.AdminVariationResponse {
	return dto.AdminVariationResponse{
		ID:               v.ID,
		CarcassID:        v.CarcassID,
		CarcassColorID:   v.CarcassColorID,
		DesignColorID:    v.DesignColorID,
		Code:             v.Code,
		Name:             v.Name,
		MainImageURL:     v.MainImageURL,
		GalleryImageURLs: models.ParseGallery(v.GalleryImageURLs),
		Active:           v.Active,
		IsDefault:        v.IsDefault,
	}
}
