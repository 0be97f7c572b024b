package handlers

import (
	"net/http"

	"coffeezone_backend/internal/services"
	"coffeezone_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminAuthHandler - вход в админку
type AdminAuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAdminAuthHandler(auth services.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{
		BaseHandler: NewBaseHandler(),
		auth:        auth,
	}
}

// Login - POST /login, выдает JWT для Authorization: Bearer
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.auth.Login(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
