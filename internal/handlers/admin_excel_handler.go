package handlers

import (
	"net/http"

	"coffeezone_backend/internal/logger"
	"coffeezone_backend/internal/services"
	"coffeezone_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminExcelHandler - выгрузка и загрузка словарей каталога в xlsx
type AdminExcelHandler struct {
	BaseHandler
	excel services.ExcelService
}

func NewAdminExcelHandler(excel services.ExcelService) *AdminExcelHandler {
	return &AdminExcelHandler{
		BaseHandler: NewBaseHandler(),
		excel:       excel,
	}
}

func (h *AdminExcelHandler) Register(rg *gin.RouterGroup) {
	excel := rg.Group("/excel")
	excel.GET("/:entity/export", h.Export)
	excel.POST("/:entity/import", h.Import)
}

// Export - GET /excel/:entity/export
func (h *AdminExcelHandler) Export(c *gin.Context) {
	file, filename, err := h.excel.Export(h.GetDB(c), c.Param("entity"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		// Заголовки уже отправлены, остается только залогировать
		logger.CtxWithError(c.Request.Context(), "Failed to stream xlsx export", err)
	}
}

// Import - POST /excel/:entity/import, multipart-поле "file"
func (h *AdminExcelHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	result, err := h.excel.Import(h.GetDB(c), c.Param("entity"), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
