package services

import (
	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CatalogService - админские CRUD-операции над словарями каталога.
// Удаление запрещено, пока на запись ссылаются вариации или комплекты.
type CatalogService interface {
	ListMachines(db *gorm.DB) ([]models.CoffeeMachine, error)
	GetMachine(db *gorm.DB, id int) (*models.CoffeeMachine, error)
	CreateMachine(db *gorm.DB, req dto.CatalogItemRequest) (*models.CoffeeMachine, error)
	UpdateMachine(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.CoffeeMachine, error)
	DeleteMachine(db *gorm.DB, id int) error

	ListFridges(db *gorm.DB) ([]models.Fridge, error)
	GetFridge(db *gorm.DB, id int) (*models.Fridge, error)
	CreateFridge(db *gorm.DB, req dto.CatalogItemRequest) (*models.Fridge, error)
	UpdateFridge(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.Fridge, error)
	DeleteFridge(db *gorm.DB, id int) error

	ListCarcasses(db *gorm.DB) ([]models.Carcass, error)
	GetCarcass(db *gorm.DB, id int) (*models.Carcass, error)
	CreateCarcass(db *gorm.DB, req dto.CatalogItemRequest) (*models.Carcass, error)
	UpdateCarcass(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.Carcass, error)
	DeleteCarcass(db *gorm.DB, id int) error

	ListTerminals(db *gorm.DB) ([]models.Terminal, error)
	GetTerminal(db *gorm.DB, id int) (*models.Terminal, error)
	CreateTerminal(db *gorm.DB, req dto.CatalogItemRequest) (*models.Terminal, error)
	UpdateTerminal(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.Terminal, error)
	DeleteTerminal(db *gorm.DB, id int) error

	ListCarcassColors(db *gorm.DB) ([]models.CarcassColor, error)
	GetCarcassColor(db *gorm.DB, id int) (*models.CarcassColor, error)
	CreateCarcassColor(db *gorm.DB, req dto.ColorRequest) (*models.CarcassColor, error)
	UpdateCarcassColor(db *gorm.DB, id int, req dto.ColorRequest) (*models.CarcassColor, error)
	DeleteCarcassColor(db *gorm.DB, id int) error

	ListDesignColors(db *gorm.DB) ([]models.DesignColor, error)
	GetDesignColor(db *gorm.DB, id int) (*models.DesignColor, error)
	CreateDesignColor(db *gorm.DB, req dto.ColorRequest) (*models.DesignColor, error)
	UpdateDesignColor(db *gorm.DB, id int, req dto.ColorRequest) (*models.DesignColor, error)
	DeleteDesignColor(db *gorm.DB, id int) error

	// Привязка загруженного изображения: основная картинка или галерея
	AttachMachineImage(db *gorm.DB, id int, url string, gallery bool) error
	AttachFridgeImage(db *gorm.DB, id int, url string, gallery bool) error
	AttachCarcassImage(db *gorm.DB, id int, url string, gallery bool) error
	AttachTerminalImage(db *gorm.DB, id int, url string, gallery bool) error
	AttachCarcassColorImage(db *gorm.DB, id int, url string, gallery bool) error
	AttachDesignColorImage(db *gorm.DB, id int, url string, gallery bool) error
}

type catalogService struct {
	variations repositories.VariationRepository
	bundles    repositories.BundleRepository
}

func NewCatalogService(variations repositories.VariationRepository, bundles repositories.BundleRepository) CatalogService {
	return &catalogService{
		variations: variations,
		bundles:    bundles,
	}
}

// ============================================
// ОБЩИЕ ПОМОЩНИКИ
// ============================================

func catalogItemFromRequest(req dto.CatalogItemRequest) models.CatalogItem {
	item := models.CatalogItem{
		Code:             req.Code,
		Name:             req.Name,
		Specs:            req.Specs,
		Price:            req.Price,
		MainImageURL:     req.MainImageURL,
		GalleryImageURLs: models.GalleryFromStrings(req.GalleryImageURLs),
		Active:           true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	return item
}

// applyCatalogItem переносит поля запроса в существующую запись.
// Пустой code в запросе оставляет прежний код.
func applyCatalogItem(dst *models.CatalogItem, req dto.CatalogItemRequest) {
	if req.Code != "" {
		dst.Code = req.Code
	}
	dst.Name = req.Name
	dst.Specs = req.Specs
	dst.Price = req.Price
	dst.MainImageURL = req.MainImageURL
	dst.GalleryImageURLs = models.GalleryFromStrings(req.GalleryImageURLs)
	if req.Active != nil {
		dst.Active = *req.Active
	}
}

func colorItemFromRequest(req dto.ColorRequest) models.ColorItem {
	item := models.ColorItem{
		Code:             req.Code,
		Name:             req.Name,
		PriceDelta:       req.PriceDelta,
		MainImageURL:     req.MainImageURL,
		GalleryImageURLs: models.GalleryFromStrings(req.GalleryImageURLs),
		Active:           true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	return item
}

func applyColorItem(dst *models.ColorItem, req dto.ColorRequest) {
	if req.Code != "" {
		dst.Code = req.Code
	}
	dst.Name = req.Name
	dst.PriceDelta = req.PriceDelta
	dst.MainImageURL = req.MainImageURL
	dst.GalleryImageURLs = models.GalleryFromStrings(req.GalleryImageURLs)
	if req.Active != nil {
		dst.Active = *req.Active
	}
}

func listEntities[T any](db *gorm.DB) ([]T, error) {
	items, err := repositories.List[T](db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

func getEntity[T any](db *gorm.DB, domain string, id int) (*T, error) {
	item, err := repositories.FindByID[T](db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(domain, "Record not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func createEntity[T any](db *gorm.DB, domain, code string, item *T) (*T, error) {
	if code != "" {
		taken, err := repositories.CodeTaken[T](db, code, 0)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.NewAlreadyExistsError(domain, "Code is already in use")
		}
	}
	if err := repositories.Create(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func updateEntity[T any](db *gorm.DB, domain string, id int, code string, item *T) (*T, error) {
	if code != "" {
		taken, err := repositories.CodeTaken[T](db, code, id)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.NewAlreadyExistsError(domain, "Code is already in use")
		}
	}
	if err := repositories.Save(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

// deleteEntity удаляет запись, если на нее нет ссылок.
// refCounters считают зависимые вариации и комплекты.
func deleteEntity[T any](db *gorm.DB, domain string, id int, refCounters ...func(*gorm.DB, int) (int64, error)) error {
	for _, count := range refCounters {
		n, err := count(db, id)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if n > 0 {
			return apperrors.NewConflictError(domain, "Record is referenced by variations or bundles")
		}
	}
	if err := repositories.DeleteByID[T](db, id); err != nil {
		if apperrors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(domain, "Record not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func attachCatalogImage[T any](db *gorm.DB, domain string, id int, url string, gallery bool, get func(*T) *models.CatalogItem) error {
	item, err := getEntity[T](db, domain, id)
	if err != nil {
		return err
	}
	c := get(item)
	if gallery {
		c.GalleryImageURLs = models.GalleryFromStrings(append(models.ParseGallery(c.GalleryImageURLs), url))
	} else {
		c.MainImageURL = url
	}
	if err := repositories.Save(db, item); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func attachColorImage[T any](db *gorm.DB, domain string, id int, url string, gallery bool, get func(*T) *models.ColorItem) error {
	item, err := getEntity[T](db, domain, id)
	if err != nil {
		return err
	}
	c := get(item)
	if gallery {
		c.GalleryImageURLs = models.GalleryFromStrings(append(models.ParseGallery(c.GalleryImageURLs), url))
	} else {
		c.MainImageURL = url
	}
	if err := repositories.Save(db, item); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *catalogService) AttachMachineImage(db *gorm.DB, id int, url string, gallery bool) error {
	return attachCatalogImage(db, "coffee_machine", id, url, gallery,
		func(m *models.CoffeeMachine) *models.CatalogItem { return &m.CatalogItem })
}

func (s *catalogService) AttachFridgeImage(db *gorm.DB, id int, url string, gallery bool) error {
	return attachCatalogImage(db, "fridge", id, url, gallery,
		func(f *models.Fridge) *models.CatalogItem { return &f.CatalogItem })
}

func (s *catalogService) AttachCarcassImage(db *gorm.DB, id int, url string, gallery bool) error {
	return attachCatalogImage(db, "carcass", id, url, gallery,
		func(c *models.Carcass) *models.CatalogItem { return &c.CatalogItem })
}

func (s *catalogService) AttachTerminalImage(db *gorm.DB, id int, url string, gallery bool) error {
	return attachCatalogImage(db, "terminal", id, url, gallery,
		func(t *models.Terminal) *models.CatalogItem { return &t.CatalogItem })
}

func (s *catalogService) AttachCarcassColorImage(db *gorm.DB, id int, url string, gallery bool) error {
	return attachColorImage(db, "carcass_color", id, url, gallery,
		func(c *models.CarcassColor) *models.ColorItem { return &c.ColorItem })
}

func (s *catalogService) AttachDesignColorImage(db *gorm.DB, id int, url string, gallery bool) error {
	return attachColorImage(db, "design_color", id, url, gallery,
		func(c *models.DesignColor) *models.ColorItem { return &c.ColorItem })
}

// ============================================
// КОФЕМАШИНЫ
// ============================================

func (s *catalogService) ListMachines(db *gorm.DB) ([]models.CoffeeMachine, error) {
	return listEntities[models.CoffeeMachine](db)
}

func (s *catalogService) GetMachine(db *gorm.DB, id int) (*models.CoffeeMachine, error) {
	return getEntity[models.CoffeeMachine](db, "coffee_machine", id)
}

func (s *catalogService) CreateMachine(db *gorm.DB, req dto.CatalogItemRequest) (*models.CoffeeMachine, error) {
	machine := &models.CoffeeMachine{
		CatalogItem: catalogItemFromRequest(req),
		ShortTitle:  req.ShortTitle,
	}
	return createEntity(db, "coffee_machine", req.Code, machine)
}

func (s *catalogService) UpdateMachine(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.CoffeeMachine, error) {
	machine, err := s.GetMachine(db, id)
	if err != nil {
		return nil, err
	}
	applyCatalogItem(&machine.CatalogItem, req)
	machine.ShortTitle = req.ShortTitle
	return updateEntity(db, "coffee_machine", id, req.Code, machine)
}

func (s *catalogService) DeleteMachine(db *gorm.DB, id int) error {
	return deleteEntity[models.CoffeeMachine](db, "coffee_machine", id,
		func(db *gorm.DB, id int) (int64, error) {
			return s.bundles.CountByComponent(db, "coffee_machine_id", id)
		})
}

// ============================================
// ХОЛОДИЛЬНИКИ
// ============================================

func (s *catalogService) ListFridges(db *gorm.DB) ([]models.Fridge, error) {
	return listEntities[models.Fridge](db)
}

func (s *catalogService) GetFridge(db *gorm.DB, id int) (*models.Fridge, error) {
	return getEntity[models.Fridge](db, "fridge", id)
}

func (s *catalogService) CreateFridge(db *gorm.DB, req dto.CatalogItemRequest) (*models.Fridge, error) {
	fridge := &models.Fridge{CatalogItem: catalogItemFromRequest(req)}
	return createEntity(db, "fridge", req.Code, fridge)
}

func (s *catalogService) UpdateFridge(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.Fridge, error) {
	fridge, err := s.GetFridge(db, id)
	if err != nil {
		return nil, err
	}
	applyCatalogItem(&fridge.CatalogItem, req)
	return updateEntity(db, "fridge", id, req.Code, fridge)
}

func (s *catalogService) DeleteFridge(db *gorm.DB, id int) error {
	return deleteEntity[models.Fridge](db, "fridge", id,
		func(db *gorm.DB, id int) (int64, error) {
			return s.bundles.CountByComponent(db, "fridge_id", id)
		})
}

// ============================================
// КАРКАСЫ
// ============================================

func (s *catalogService) ListCarcasses(db *gorm.DB) ([]models.Carcass, error) {
	return listEntities[models.Carcass](db)
}

func (s *catalogService) GetCarcass(db *gorm.DB, id int) (*models.Carcass, error) {
	return getEntity[models.Carcass](db, "carcass", id)
}

func (s *catalogService) CreateCarcass(db *gorm.DB, req dto.CatalogItemRequest) (*models.Carcass, error) {
	carcass := &models.Carcass{CatalogItem: catalogItemFromRequest(req)}
	return createEntity(db, "carcass", req.Code, carcass)
}

func (s *catalogService) UpdateCarcass(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.Carcass, error) {
	carcass, err := s.GetCarcass(db, id)
	if err != nil {
		return nil, err
	}
	applyCatalogItem(&carcass.CatalogItem, req)
	return updateEntity(db, "carcass", id, req.Code, carcass)
}

func (s *catalogService) DeleteCarcass(db *gorm.DB, id int) error {
	return deleteEntity[models.Carcass](db, "carcass", id,
		s.variations.CountByCarcass,
		s.bundles.CountByCarcass,
	)
}

// ============================================
// ТЕРМИНАЛЫ
// ============================================

func (s *catalogService) ListTerminals(db *gorm.DB) ([]models.Terminal, error) {
	return listEntities[models.Terminal](db)
}

func (s *catalogService) GetTerminal(db *gorm.DB, id int) (*models.Terminal, error) {
	return getEntity[models.Terminal](db, "terminal", id)
}

func (s *catalogService) CreateTerminal(db *gorm.DB, req dto.CatalogItemRequest) (*models.Terminal, error) {
	terminal := &models.Terminal{CatalogItem: catalogItemFromRequest(req)}
	return createEntity(db, "terminal", req.Code, terminal)
}

func (s *catalogService) UpdateTerminal(db *gorm.DB, id int, req dto.CatalogItemRequest) (*models.Terminal, error) {
	terminal, err := s.GetTerminal(db, id)
	if err != nil {
		return nil, err
	}
	applyCatalogItem(&terminal.CatalogItem, req)
	return updateEntity(db, "terminal", id, req.Code, terminal)
}

func (s *catalogService) DeleteTerminal(db *gorm.DB, id int) error {
	return deleteEntity[models.Terminal](db, "terminal", id,
		func(db *gorm.DB, id int) (int64, error) {
			return s.bundles.CountByComponent(db, "terminal_id", id)
		})
}

// ============================================
// ЦВЕТА КАРКАСА
// ============================================

func (s *catalogService) ListCarcassColors(db *gorm.DB) ([]models.CarcassColor, error) {
	return listEntities[models.CarcassColor](db)
}

func (s *catalogService) GetCarcassColor(db *gorm.DB, id int) (*models.CarcassColor, error) {
	return getEntity[models.CarcassColor](db, "carcass_color", id)
}

func (s *catalogService) CreateCarcassColor(db *gorm.DB, req dto.ColorRequest) (*models.CarcassColor, error) {
	color := &models.CarcassColor{ColorItem: colorItemFromRequest(req)}
	return createEntity(db, "carcass_color", req.Code, color)
}

func (s *catalogService) UpdateCarcassColor(db *gorm.DB, id int, req dto.ColorRequest) (*models.CarcassColor, error) {
	color, err := s.GetCarcassColor(db, id)
	if err != nil {
		return nil, err
	}
	applyColorItem(&color.ColorItem, req)
	return updateEntity(db, "carcass_color", id, req.Code, color)
}

func (s *catalogService) DeleteCarcassColor(db *gorm.DB, id int) error {
	return deleteEntity[models.CarcassColor](db, "carcass_color", id,
		s.variations.CountByCarcassColor,
		s.bundles.CountByCarcassColor,
	)
}

// ============================================
// ЦВЕТА ДИЗАЙНА
// ============================================

func (s *catalogService) ListDesignColors(db *gorm.DB) ([]models.DesignColor, error) {
	return listEntities[models.DesignColor](db)
}

func (s *catalogService) GetDesignColor(db *gorm.DB, id int) (*models.DesignColor, error) {
	return getEntity[models.DesignColor](db, "design_color", id)
}

func (s *catalogService) CreateDesignColor(db *gorm.DB, req dto.ColorRequest) (*models.DesignColor, error) {
	color := &models.DesignColor{ColorItem: colorItemFromRequest(req)}
	return createEntity(db, "design_color", req.Code, color)
}

func (s *catalogService) UpdateDesignColor(db *gorm.DB, id int, req dto.ColorRequest) (*models.DesignColor, error) {
	color, err := s.GetDesignColor(db, id)
	if err != nil {
		return nil, err
	}
	applyColorItem(&color.ColorItem, req)
	return updateEntity(db, "design_color", id, req.Code, color)
}

func (s *catalogService) DeleteDesignColor(db *gorm.DB, id int) error {
	return deleteEntity[models.DesignColor](db, "design_color", id,
		s.variations.CountByDesignColor,
		s.bundles.CountByDesignColor,
	)
}
