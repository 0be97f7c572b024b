package handlers

import (
	"net/http"

	"coffeezone_backend/internal/services"
	"coffeezone_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// BundleHandler - публичные эндпоинты комплектов
type BundleHandler struct {
	BaseHandler
	bundles services.BundleService
}

func NewBundleHandler(bundles services.BundleService) *BundleHandler {
	return &BundleHandler{
		BaseHandler: NewBaseHandler(),
		bundles:     bundles,
	}
}

// GetBundles - GET /api/bundles, только комплекты с show_on_site
func (h *BundleHandler) GetBundles(c *gin.Context) {
	result, err := h.bundles.ListVisible(h.GetDB(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPreview - GET /api/preview, подбор комплекта под выбор пользователя
func (h *BundleHandler) GetPreview(c *gin.Context) {
	var req dto.PreviewRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.bundles.Preview(h.GetDB(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
