package handlers

import (
	"net/http"

	"coffeezone_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MetaHandler отдает агрегат словарей каталога
type MetaHandler struct {
	BaseHandler
	meta services.MetaService
}

func NewMetaHandler(meta services.MetaService) *MetaHandler {
	return &MetaHandler{
		BaseHandler: NewBaseHandler(),
		meta:        meta,
	}
}

// GetMeta - GET /api/meta
func (h *MetaHandler) GetMeta(c *gin.Context) {
	result, err := h.meta.GetMeta(h.GetDB(c), RequestBaseURL(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RegisterDictionaries - отдельные публичные списки словарей
func (h *MetaHandler) RegisterDictionaries(rg *gin.RouterGroup) {
	rg.GET("/machines", h.dictionary(func(c *gin.Context) (interface{}, error) {
		return h.meta.GetMachines(h.GetDB(c), RequestBaseURL(c))
	}))
	rg.GET("/fridges", h.dictionary(func(c *gin.Context) (interface{}, error) {
		return h.meta.GetFridges(h.GetDB(c), RequestBaseURL(c))
	}))
	rg.GET("/carcasses", h.dictionary(func(c *gin.Context) (interface{}, error) {
		return h.meta.GetCarcasses(h.GetDB(c), RequestBaseURL(c))
	}))
	rg.GET("/terminals", h.dictionary(func(c *gin.Context) (interface{}, error) {
		return h.meta.GetTerminals(h.GetDB(c), RequestBaseURL(c))
	}))
	rg.GET("/carcass-colors", h.dictionary(func(c *gin.Context) (interface{}, error) {
		return h.meta.GetCarcassColors(h.GetDB(c), RequestBaseURL(c))
	}))
	rg.GET("/design-colors", h.dictionary(func(c *gin.Context) (interface{}, error) {
		return h.meta.GetDesignColors(h.GetDB(c), RequestBaseURL(c))
	}))
}

func (h *MetaHandler) dictionary(load func(*gin.Context) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := load(c)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
