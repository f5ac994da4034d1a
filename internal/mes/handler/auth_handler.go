package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	token := middleware.BearerToken(c)
	user, err := h.svc.Authenticate(c.Request.Context(), token)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), c.GetString(middleware.KeyToken)); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"success": true})
}

// ListPlants GET /api/plants
func (h *AuthHandler) ListPlants(c *gin.Context) {
	OK(c, h.svc.ListPlants(c.Request.Context()))
}
