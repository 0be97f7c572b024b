package handlers

import (
	"net/http"

	"coffeezone_backend/internal/services"
	"coffeezone_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminVariationHandler - управление вариациями каркасов
type AdminVariationHandler struct {
	BaseHandler
	variations services.VariationService
	uploads    services.UploadService
}

func NewAdminVariationHandler(variations services.VariationService, uploads services.UploadService) *AdminVariationHandler {
	return &AdminVariationHandler{
		BaseHandler: NewBaseHandler(),
		variations:  variations,
		uploads:     uploads,
	}
}

func (h *AdminVariationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/carcasses/:id/variations", h.ListByCarcass)
	rg.POST("/carcasses/:id/variations", h.Create)
	rg.GET("/variations/:id", h.Get)
	rg.PUT("/variations/:id", h.Update)
	rg.DELETE("/variations/:id", h.Delete)
	rg.POST("/variations/:id/default", h.SetDefault)
	rg.POST("/variations/:id/image", attachImageHandler(&h.BaseHandler, h.uploads, h.variations.AttachImage, false))
	rg.POST("/variations/:id/gallery", attachImageHandler(&h.BaseHandler, h.uploads, h.variations.AttachImage, true))
}

// ListByCarcass - GET /carcasses/:id/variations
func (h *AdminVariationHandler) ListByCarcass(c *gin.Context) {
	carcassID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	result, err := h.variations.ListByCarcass(h.GetDB(c), carcassID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create - POST /carcasses/:id/variations
func (h *AdminVariationHandler) Create(c *gin.Context) {
	carcassID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.VariationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.variations.Create(h.GetDB(c), carcassID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Get - GET /variations/:id
func (h *AdminVariationHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	result, err := h.variations.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update - PUT /variations/:id
func (h *AdminVariationHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.VariationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.variations.Update(h.GetDB(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete - DELETE /variations/:id
func (h *AdminVariationHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.variations.Delete(h.GetDB(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefault - POST /variations/:id/default
func (h *AdminVariationHandler) SetDefault(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	result, err := h.variations.SetDefault(h.GetDB(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
