package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nashon/pos-ledger-api/internal/application/service"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/request"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/response"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/middleware"
)

// AuthHandler handles terminal session HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles operator sign-in
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Login(req.Operator, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Login successful", result)
}

// Refresh handles exchanging a refresh token for a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Token refreshed successfully", result)
}

// Me returns the operator bound to the current session
func (h *AuthHandler) Me(c *gin.Context) {
	operator := middleware.GetOperator(c)
	if operator == "" {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	response.OK(c, "Session retrieved successfully", gin.H{"operator": operator})
}
