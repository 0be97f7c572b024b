package handlers

import (
	"net/http"

	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/services"
	"coffeezone_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminCatalogHandler - CRUD словарей каталога в админке.
// Шесть словарей имеют одинаковую форму эндпоинтов, поэтому
// обработчики собираются из обобщенных конструкторов.
type AdminCatalogHandler struct {
	BaseHandler
	catalog services.CatalogService
	uploads services.UploadService
}

func NewAdminCatalogHandler(catalog services.CatalogService, uploads services.UploadService) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		BaseHandler: NewBaseHandler(),
		catalog:     catalog,
		uploads:     uploads,
	}
}

// Register вешает CRUD-маршруты словарей на админскую группу
func (h *AdminCatalogHandler) Register(rg *gin.RouterGroup) {
	registerCRUD(rg.Group("/machines"), &h.BaseHandler, h.uploads, crudOps[models.CoffeeMachine, dto.CatalogItemRequest]{
		list:   h.catalog.ListMachines,
		get:    h.catalog.GetMachine,
		create: h.catalog.CreateMachine,
		update: h.catalog.UpdateMachine,
		delete: h.catalog.DeleteMachine,
		attach: h.catalog.AttachMachineImage,
		render: func(m *models.CoffeeMachine) interface{} {
			resp := renderCatalogItem(m.CatalogItem)
			resp.ShortTitle = m.ShortTitle
			return resp
		},
	})
	registerCRUD(rg.Group("/fridges"), &h.BaseHandler, h.uploads, crudOps[models.Fridge, dto.CatalogItemRequest]{
		list:   h.catalog.ListFridges,
		get:    h.catalog.GetFridge,
		create: h.catalog.CreateFridge,
		update: h.catalog.UpdateFridge,
		delete: h.catalog.DeleteFridge,
		attach: h.catalog.AttachFridgeImage,
		render: func(f *models.Fridge) interface{} { return renderCatalogItem(f.CatalogItem) },
	})
	registerCRUD(rg.Group("/carcasses"), &h.BaseHandler, h.uploads, crudOps[models.Carcass, dto.CatalogItemRequest]{
		list:   h.catalog.ListCarcasses,
		get:    h.catalog.GetCarcass,
		create: h.catalog.CreateCarcass,
		update: h.catalog.UpdateCarcass,
		delete: h.catalog.DeleteCarcass,
		attach: h.catalog.AttachCarcassImage,
		render: func(c *models.Carcass) interface{} { return renderCatalogItem(c.CatalogItem) },
	})
	registerCRUD(rg.Group("/terminals"), &h.BaseHandler, h.uploads, crudOps[models.Terminal, dto.CatalogItemRequest]{
		list:   h.catalog.ListTerminals,
		get:    h.catalog.GetTerminal,
		create: h.catalog.CreateTerminal,
		update: h.catalog.UpdateTerminal,
		delete: h.catalog.DeleteTerminal,
		attach: h.catalog.AttachTerminalImage,
		render: func(t *models.Terminal) interface{} { return renderCatalogItem(t.CatalogItem) },
	})
	registerCRUD(rg.Group("/carcass-colors"), &h.BaseHandler, h.uploads, crudOps[models.CarcassColor, dto.ColorRequest]{
		list:   h.catalog.ListCarcassColors,
		get:    h.catalog.GetCarcassColor,
		create: h.catalog.CreateCarcassColor,
		update: h.catalog.UpdateCarcassColor,
		delete: h.catalog.DeleteCarcassColor,
		attach: h.catalog.AttachCarcassColorImage,
		render: func(c *models.CarcassColor) interface{} { return renderColorItem(c.ColorItem) },
	})
	registerCRUD(rg.Group("/design-colors"), &h.BaseHandler, h.uploads, crudOps[models.DesignColor, dto.ColorRequest]{
		list:   h.catalog.ListDesignColors,
		get:    h.catalog.GetDesignColor,
		create: h.catalog.CreateDesignColor,
		update: h.catalog.UpdateDesignColor,
		delete: h.catalog.DeleteDesignColor,
		attach: h.catalog.AttachDesignColorImage,
		render: func(c *models.DesignColor) interface{} { return renderColorItem(c.ColorItem) },
	})
}

// crudOps - набор операций сервиса для одного словаря
type crudOps[T any, R any] struct {
	list   func(*gorm.DB) ([]T, error)
	get    func(*gorm.DB, int) (*T, error)
	create func(*gorm.DB, R) (*T, error)
	update func(*gorm.DB, int, R) (*T, error)
	delete func(*gorm.DB, int) error
	attach func(*gorm.DB, int, string, bool) error
	render func(*T) interface{}
}

func registerCRUD[T any, R any](rg *gin.RouterGroup, h *BaseHandler, uploads services.UploadService, ops crudOps[T, R]) {
	rg.GET("", func(c *gin.Context) {
		items, err := ops.list(h.GetDB(c))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		result := make([]interface{}, 0, len(items))
		for i := range items {
			result = append(result, ops.render(&items[i]))
		}
		c.JSON(http.StatusOK, result)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := h.ParamID(c, "id")
		if !ok {
			return
		}
		item, err := ops.get(h.GetDB(c), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ops.render(item))
	})

	rg.POST("", func(c *gin.Context) {
		var req R
		if !h.BindJSON(c, &req) {
			return
		}
		item, err := ops.create(h.GetDB(c), req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, ops.render(item))
	})

	rg.PUT("/:id", func(c *gin.Context) {
		id, ok := h.ParamID(c, "id")
		if !ok {
			return
		}
		var req R
		if !h.BindJSON(c, &req) {
			return
		}
		item, err := ops.update(h.GetDB(c), id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ops.render(item))
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, ok := h.ParamID(c, "id")
		if !ok {
			return
		}
		if err := ops.delete(h.GetDB(c), id); err != nil {
			h.HandleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	rg.POST("/:id/image", attachImageHandler(h, uploads, ops.attach, false))
	rg.POST("/:id/gallery", attachImageHandler(h, uploads, ops.attach, true))
}

func renderCatalogItem(item models.CatalogItem) dto.AdminCatalogItemResponse {
	return dto.AdminCatalogItemResponse{
		ID:               item.ID,
		Code:             item.Code,
		Name:             item.Name,
		Specs:            item.Specs,
		Price:            item.Price,
		MainImageURL:     item.MainImageURL,
		GalleryImageURLs: models.ParseGallery(item.GalleryImageURLs),
		Active:           item.Active,
	}
}

func renderColorItem(item models.ColorItem) dto.AdminColorResponse {
	return dto.AdminColorResponse{
		ID:               item.ID,
		Code:             item.Code,
		Name:             item.Name,
		PriceDelta:       item.PriceDelta,
		MainImageURL:     item.MainImageURL,
		GalleryImageURLs: models.ParseGallery(item.GalleryImageURLs),
		Active:           item.Active,
	}
}
