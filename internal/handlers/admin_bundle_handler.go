package handlers

import (
	"net/http"

	"coffeezone_backend/internal/services"
	"coffeezone_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminBundleHandler - управление комплектами
type AdminBundleHandler struct {
	BaseHandler
	bundles services.BundleService
}

func NewAdminBundleHandler(bundles services.BundleService) *AdminBundleHandler {
	return &AdminBundleHandler{
		BaseHandler: NewBaseHandler(),
		bundles:     bundles,
	}
}

func (h *AdminBundleHandler) Register(rg *gin.RouterGroup) {
	bundles := rg.Group("/bundles")
	bundles.GET("", h.List)
	bundles.GET("/:id", h.Get)
	bundles.POST("", h.Create)
	bundles.PUT("/:id", h.Update)
	bundles.DELETE("/:id", h.Delete)
}

func (h *AdminBundleHandler) List(c *gin.Context) {
	result, err := h.bundles.List(h.GetDB(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminBundleHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	result, err := h.bundles.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminBundleHandler) Create(c *gin.Context) {
	var req dto.BundleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.bundles.Create(h.GetDB(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AdminBundleHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.BundleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.bundles.Update(h.GetDB(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminBundleHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.bundles.Delete(h.GetDB(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
