package handlers

import (
	"strconv"
	"strings"

	"coffeezone_backend/internal/validator"
	"coffeezone_backend/pkg/apperrors"
	"coffeezone_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler - общие помощники HTTP-слоя: доступ к БД из контекста,
// биндинг с валидацией и единая отдача ошибок
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler() BaseHandler {
	return BaseHandler{validator: validator.New()}
}

// GetDB достает *gorm.DB, положенный DBMiddleware
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	value, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil
	}
	db, _ := value.(*gorm.DB)
	return db
}

// BindJSON парсит тело запроса и прогоняет DTO через валидатор.
// При ошибке сам пишет ответ и возвращает false.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// BindQuery парсит query-параметры и валидирует DTO
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if err := h.validator.Validate(obj); err != nil {
		if ve, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ParamID читает числовой path-параметр
func (h *BaseHandler) ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// HandleError отдает ошибку сервиса в стандартном формате
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// RequestBaseURL восстанавливает базовый URL запроса для построения
// абсолютных ссылок на изображения. Уважает заголовки прокси.
func RequestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}
