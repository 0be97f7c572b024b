package services

import (
	"strings"

	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MetaService собирает агрегат словарей каталога для публичного API,
// плюс отдает словари по отдельности
type MetaService interface {
	GetMeta(db *gorm.DB, baseURL string) (*dto.MetaResponse, error)
	GetMachines(db *gorm.DB, baseURL string) ([]dto.CatalogItemResponse, error)
	GetFridges(db *gorm.DB, baseURL string) ([]dto.CatalogItemResponse, error)
	GetTerminals(db *gorm.DB, baseURL string) ([]dto.CatalogItemResponse, error)
	GetCarcasses(db *gorm.DB, baseURL string) ([]dto.CarcassResponse, error)
	GetCarcassColors(db *gorm.DB, baseURL string) ([]dto.ColorResponse, error)
	GetDesignColors(db *gorm.DB, baseURL string) ([]dto.ColorResponse, error)
}

type metaService struct {
	variations repositories.VariationRepository
}

func NewMetaService(variations repositories.VariationRepository) MetaService {
	return &metaService{variations: variations}
}

// GetMeta возвращает все активные словари одним ответом.
// Относительные пути изображений переписываются в абсолютные URL
// относительно baseURL текущего запроса.
func (s *metaService) GetMeta(db *gorm.DB, baseURL string) (*dto.MetaResponse, error) {
	abs := absURLFunc(baseURL)

	machines, err := repositories.ListActive[models.CoffeeMachine](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	fridges, err := repositories.ListActive[models.Fridge](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	carcasses, err := repositories.ListActive[models.Carcass](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	terminals, err := repositories.ListActive[models.Terminal](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	carcassColors, err := repositories.ListActive[models.CarcassColor](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	designColors, err := repositories.ListActive[models.DesignColor](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	variations, err := s.variations.ListActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	meta := &dto.MetaResponse{
		Machines:      make([]dto.CatalogItemResponse, 0, len(machines)),
		Fridges:       make([]dto.CatalogItemResponse, 0, len(fridges)),
		Carcasses:     buildCarcassResponses(carcasses, variations, abs),
		CarcassColors: make([]dto.ColorResponse, 0, len(carcassColors)),
		DesignColors:  make([]dto.ColorResponse, 0, len(designColors)),
		Terminals:     make([]dto.CatalogItemResponse, 0, len(terminals)),
	}

	for _, m := range machines {
		item := toCatalogItemResponse(m.CatalogItem, abs)
		item.ShortTitle = m.ShortTitle
		meta.Machines = append(meta.Machines, item)
	}
	for _, f := range fridges {
		meta.Fridges = append(meta.Fridges, toCatalogItemResponse(f.CatalogItem, abs))
	}
	for _, t := range terminals {
		meta.Terminals = append(meta.Terminals, toCatalogItemResponse(t.CatalogItem, abs))
	}
	for _, c := range carcassColors {
		meta.CarcassColors = append(meta.CarcassColors, toColorResponse(c.ColorItem, abs))
	}
	for _, c := range designColors {
		meta.DesignColors = append(meta.DesignColors, toColorResponse(c.ColorItem, abs))
	}

	return meta, nil
}

func (s *metaService) GetMachines(db *gorm.DB, baseURL string) ([]dto.CatalogItemResponse, error) {
	machines, err := repositories.ListActive[models.CoffeeMachine](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	abs := absURLFunc(baseURL)
	result := make([]dto.CatalogItemResponse, 0, len(machines))
	for _, m := range machines {
		item := toCatalogItemResponse(m.CatalogItem, abs)
		item.ShortTitle = m.ShortTitle
		result = append(result, item)
	}
	return result, nil
}

func (s *metaService) GetFridges(db *gorm.DB, baseURL string) ([]dto.CatalogItemResponse, error) {
	return listCatalogItems[models.Fridge](db, baseURL, func(f *models.Fridge) models.CatalogItem { return f.CatalogItem })
}

func (s *metaService) GetTerminals(db *gorm.DB, baseURL string) ([]dto.CatalogItemResponse, error) {
	return listCatalogItems[models.Terminal](db, baseURL, func(t *models.Terminal) models.CatalogItem { return t.CatalogItem })
}

func (s *metaService) GetCarcasses(db *gorm.DB, baseURL string) ([]dto.CarcassResponse, error) {
	carcasses, err := repositories.ListActive[models.Carcass](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	variations, err := s.variations.ListActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCarcassResponses(carcasses, variations, absURLFunc(baseURL)), nil
}

func (s *metaService) GetCarcassColors(db *gorm.DB, baseURL string) ([]dto.ColorResponse, error) {
	return listColorItems[models.CarcassColor](db, baseURL, func(c *models.CarcassColor) models.ColorItem { return c.ColorItem })
}

func (s *metaService) GetDesignColors(db *gorm.DB, baseURL string) ([]dto.ColorResponse, error) {
	return listColorItems[models.DesignColor](db, baseURL, func(c *models.DesignColor) models.ColorItem { return c.ColorItem })
}

func listCatalogItems[T any](db *gorm.DB, baseURL string, get func(*T) models.CatalogItem) ([]dto.CatalogItemResponse, error) {
	items, err := repositories.ListActive[T](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	abs := absURLFunc(baseURL)
	result := make([]dto.CatalogItemResponse, 0, len(items))
	for i := range items {
		result = append(result, toCatalogItemResponse(get(&items[i]), abs))
	}
	return result, nil
}

func listColorItems[T any](db *gorm.DB, baseURL string, get func(*T) models.ColorItem) ([]dto.ColorResponse, error) {
	items, err := repositories.ListActive[T](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	abs := absURLFunc(baseURL)
	result := make([]dto.ColorResponse, 0, len(items))
	for i := range items {
		result = append(result, toColorResponse(get(&items[i]), abs))
	}
	return result, nil
}

// buildCarcassResponses раскладывает активные вариации по каркасам
func buildCarcassResponses(carcasses []models.Carcass, variations []models.CarcassDesignCombination, abs func(string) string) []dto.CarcassResponse {
	variationsByCarcass := make(map[int][]dto.VariationResponse)
	for _, v := range variations {
		variationsByCarcass[v.CarcassID] = append(variationsByCarcass[v.CarcassID], toVariationResponse(v, abs))
	}

	result := make([]dto.CarcassResponse, 0, len(carcasses))
	for _, c := range carcasses {
		resp := dto.CarcassResponse{
			CatalogItemResponse: toCatalogItemResponse(c.CatalogItem, abs),
			Variations:          variationsByCarcass[c.ID],
		}
		if resp.Variations == nil {
			resp.Variations = []dto.VariationResponse{}
		}
		result = append(result, resp)
	}
	return result
}

// ============================================
// МАППИНГ МОДЕЛЕЙ В ПУБЛИЧНЫЕ DTO
// ============================================

func toCatalogItemResponse(item models.CatalogItem, abs func(string) string) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:               item.ID,
		Code:             item.Code,
		Name:             item.Name,
		Price:            item.Price,
		MainImageURL:     abs(item.MainImageURL),
		GalleryImageURLs: absAll(models.ParseGallery(item.GalleryImageURLs), abs),
		SpecsShort:       models.SplitSpecs(item.Specs),
		Active:           item.Active,
	}
}

func toColorResponse(item models.ColorItem, abs func(string) string) dto.ColorResponse {
	return dto.ColorResponse{
		ID:               item.ID,
		Code:             item.Code,
		Name:             item.Name,
		PriceDelta:       item.PriceDelta,
		MainImageURL:     abs(item.MainImageURL),
		GalleryImageURLs: absAll(models.ParseGallery(item.GalleryImageURLs), abs),
		Active:           item.Active,
	}
}

func toVariationResponse(v models.CarcassDesignCombination, abs func(string) string) dto.VariationResponse {
	resp := dto.VariationResponse{
		ID:               v.ID,
		MainImageURL:     abs(v.MainImageURL),
		GalleryImageURLs: absAll(models.ParseGallery(v.GalleryImageURLs), abs),
		Active:           v.Active,
		IsDefault:        v.IsDefault,
	}
	if v.CarcassColor != nil {
		resp.CarcassColor = dto.ColorRef{ID: v.CarcassColor.ID, Code: v.CarcassColor.Code, Name: v.CarcassColor.Name}
	}
	if v.DesignColor != nil {
		resp.DesignColor = dto.ColorRef{ID: v.DesignColor.ID, Code: v.DesignColor.Code, Name: v.DesignColor.Name}
	}
	return resp
}

// absURLFunc переписывает относительные пути изображений в абсолютные.
// Уже абсолютные URL не трогаем.
func absURLFunc(baseURL string) func(string) string {
	base := strings.TrimRight(baseURL, "/")
	return func(url string) string {
		if url == "" || base == "" {
			return url
		}
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			return url
		}
		if !strings.HasPrefix(url, "/") {
			url = "/" + url
		}
		return base + url
	}
}

func absAll(urls []string, abs func(string) string) []string {
	result := make([]string, 0, len(urls))
	for _, u := range urls {
		result = append(result, abs(u))
	}
	return result
}
