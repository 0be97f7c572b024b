package handlers

import (
	"net/http"

	"coffeezone_backend/internal/services"
	"coffeezone_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminUploadHandler - загрузка изображений для карточек каталога
type AdminUploadHandler struct {
	BaseHandler
	uploads services.UploadService
}

func NewAdminUploadHandler(uploads services.UploadService) *AdminUploadHandler {
	return &AdminUploadHandler{
		BaseHandler: NewBaseHandler(),
		uploads:     uploads,
	}
}

// attachImageHandler - общий обработчик привязки изображения к сущности:
// файл сохраняется, URL коммитится в запись, осиротевший файл удаляется
// при неудачном коммите
func attachImageHandler(h *BaseHandler, uploads services.UploadService, attach func(db *gorm.DB, id int, url string, gallery bool) error, gallery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.ParamID(c, "id")
		if !ok {
			return
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			h.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
			return
		}

		db := h.GetDB(c)
		result, err := uploads.UploadCommit(c.Request.Context(), fileHeader, func(url string) error {
			return attach(db, id, url, gallery)
		})
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// Upload - POST /upload, multipart-поле "file".
// Возвращает публичный URL, который админка подставляет в сущность.
func (h *AdminUploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}

	result, err := h.uploads.Upload(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
