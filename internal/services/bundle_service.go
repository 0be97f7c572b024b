package services

import (
	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// BundleService - публичная выдача комплектов, подбор по выбору
// пользователя и админский CRUD.
type BundleService interface {
	ListVisible(db *gorm.DB) ([]dto.BundleResponse, error)
	Preview(db *gorm.DB, req dto.PreviewRequest) (*dto.PreviewResponse, error)

	List(db *gorm.DB) ([]models.Bundle, error)
	Get(db *gorm.DB, id int) (*models.Bundle, error)
	Create(db *gorm.DB, req dto.BundleRequest) (*models.Bundle, error)
	Update(db *gorm.DB, id int, req dto.BundleRequest) (*models.Bundle, error)
	Delete(db *gorm.DB, id int) error
}

type bundleService struct {
	bundles    repositories.BundleRepository
	variations repositories.VariationRepository
}

func NewBundleService(bundles repositories.BundleRepository, variations repositories.VariationRepository) BundleService {
	return &bundleService{
		bundles:    bundles,
		variations: variations,
	}
}

// ============================================
// ПУБЛИЧНАЯ ЧАСТЬ
// ============================================

func (s *bundleService) ListVisible(db *gorm.DB) ([]dto.BundleResponse, error) {
	bundles, err := s.bundles.ListVisible(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		result = append(result, toBundleResponse(&b))
	}
	return result, nil
}

// Preview подбирает комплект под выбор пользователя.
// Сначала проверяется, что все выбранные компоненты существуют и активны,
// затем ищется точное совпадение по тройке каркас + цвета (и вариации,
// если она передана). Цену несовпавшего набора считает клиент.
func (s *bundleService) Preview(db *gorm.DB, req dto.PreviewRequest) (*dto.PreviewResponse, error) {
	if err := requireActive[models.CoffeeMachine](db, "coffee_machine", req.CoffeeMachineID); err != nil {
		return nil, err
	}
	if err := requireActive[models.Fridge](db, "fridge", req.FridgeID); err != nil {
		return nil, err
	}
	if err := requireActive[models.Carcass](db, "carcass", req.CarcassID); err != nil {
		return nil, err
	}
	if err := requireActive[models.CarcassColor](db, "carcass_color", req.CarcassColorID); err != nil {
		return nil, err
	}
	if err := requireActive[models.DesignColor](db, "design_color", req.DesignColorID); err != nil {
		return nil, err
	}
	if req.TerminalID != nil {
		if err := requireActive[models.Terminal](db, "terminal", *req.TerminalID); err != nil {
			return nil, err
		}
	}
	if req.CarcassDesignCombinationID != nil {
		variation, err := s.variations.FindByID(db, *req.CarcassDesignCombinationID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("variation", "Variation not found")
			}
			return nil, apperrors.InternalError(err)
		}
		if !variation.Active {
			return nil, apperrors.NewNotFoundError("variation", "Variation not found")
		}
		if variation.CarcassID != req.CarcassID ||
			variation.CarcassColorID != req.CarcassColorID ||
			variation.DesignColorID != req.DesignColorID {
			return nil, apperrors.NewBadRequestError("Variation does not match the selected carcass and colors")
		}
	}

	bundle, err := s.bundles.FindExact(db, req.CarcassID, req.CarcassColorID, req.DesignColorID, req.CarcassDesignCombinationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return &dto.PreviewResponse{IsExactBundle: false}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PreviewResponse{
		IsExactBundle: true,
		BundleID:      &bundle.ID,
		CustomPrice:   bundle.CustomPrice,
	}
	if bundle.OzonURL != "" {
		resp.OzonURL = &bundle.OzonURL
	}
	return resp, nil
}

// ============================================
// АДМИНСКАЯ ЧАСТЬ
// ============================================

func (s *bundleService) List(db *gorm.DB) ([]models.Bundle, error) {
	bundles, err := s.bundles.List(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bundles, nil
}

func (s *bundleService) Get(db *gorm.DB, id int) (*models.Bundle, error) {
	bundle, err := s.bundles.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("bundle", "Bundle not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return bundle, nil
}

func (s *bundleService) Create(db *gorm.DB, req dto.BundleRequest) (*models.Bundle, error) {
	variation, err := s.resolveVariation(db, req.CarcassDesignCombinationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkComponents(db, req); err != nil {
		return nil, err
	}

	combinationID := variation.ID
	bundle := &models.Bundle{
		Name:                       req.Name,
		CoffeeMachineID:            req.CoffeeMachineID,
		FridgeID:                   req.FridgeID,
		CarcassID:                  variation.CarcassID,
		CarcassColorID:             variation.CarcassColorID,
		DesignColorID:              variation.DesignColorID,
		TerminalID:                 req.TerminalID,
		CarcassDesignCombinationID: &combinationID,
		CustomPrice:                req.CustomPrice,
		OzonURL:                    req.OzonURL,
		IsAvailable:                true,
		ShowOnSite:                 true,
	}
	if req.IsAvailable != nil {
		bundle.IsAvailable = *req.IsAvailable
	}
	if req.ShowOnSite != nil {
		bundle.ShowOnSite = *req.ShowOnSite
	}

	if err := s.bundles.Create(db, bundle); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bundle, nil
}

func (s *bundleService) Update(db *gorm.DB, id int, req dto.BundleRequest) (*models.Bundle, error) {
	bundle, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}
	variation, err := s.resolveVariation(db, req.CarcassDesignCombinationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkComponents(db, req); err != nil {
		return nil, err
	}

	combinationID := variation.ID
	bundle.Name = req.Name
	bundle.CoffeeMachineID = req.CoffeeMachineID
	bundle.FridgeID = req.FridgeID
	bundle.CarcassID = variation.CarcassID
	bundle.CarcassColorID = variation.CarcassColorID
	bundle.DesignColorID = variation.DesignColorID
	bundle.TerminalID = req.TerminalID
	bundle.CarcassDesignCombinationID = &combinationID
	bundle.CustomPrice = req.CustomPrice
	bundle.OzonURL = req.OzonURL
	if req.IsAvailable != nil {
		bundle.IsAvailable = *req.IsAvailable
	}
	if req.ShowOnSite != nil {
		bundle.ShowOnSite = *req.ShowOnSite
	}

	if err := s.bundles.Save(db, bundle); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bundle, nil
}

func (s *bundleService) Delete(db *gorm.DB, id int) error {
	if err := s.bundles.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("bundle", "Bundle not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// resolveVariation находит вариацию, из которой выводятся
// carcass_id и оба цвета комплекта
func (s *bundleService) resolveVariation(db *gorm.DB, id int) (*models.CarcassDesignCombination, error) {
	variation, err := s.variations.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("variation", "Variation not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return variation, nil
}

func (s *bundleService) checkComponents(db *gorm.DB, req dto.BundleRequest) error {
	if _, err := getEntity[models.CoffeeMachine](db, "coffee_machine", req.CoffeeMachineID); err != nil {
		return err
	}
	if req.FridgeID != nil {
		if _, err := getEntity[models.Fridge](db, "fridge", *req.FridgeID); err != nil {
			return err
		}
	}
	if req.TerminalID != nil {
		if _, err := getEntity[models.Terminal](db, "terminal", *req.TerminalID); err != nil {
			return err
		}
	}
	return nil
}

func requireActive[T any](db *gorm.DB, domain string, id int) error {
	ok, err := repositories.ExistsActive[T](db, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		return apperrors.NewNotFoundError(domain, "Record not found or inactive")
	}
	return nil
}

func toBundleResponse(b *models.Bundle) dto.BundleResponse {
	return dto.BundleResponse{
		ID:                         b.ID,
		Name:                       b.Name,
		CoffeeMachineID:            b.CoffeeMachineID,
		FridgeID:                   b.FridgeID,
		CarcassID:                  b.CarcassID,
		CarcassColorID:             b.CarcassColorID,
		DesignColorID:              b.DesignColorID,
		TerminalID:                 b.TerminalID,
		CarcassDesignCombinationID: b.CarcassDesignCombinationID,
		CustomPrice:                b.CustomPrice,
		OzonURL:                    b.OzonURL,
		IsAvailable:                b.IsAvailable,
	}
}
